package memory

import (
	"context"
	"time"

	"github.com/skilltrack/tms-api/internal/models"
)

// DashboardStats scans all collections under a single read lock, so the
// counters are mutually consistent at the moment of the read.
func (s *Store) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.DashboardStats{TotalEnrollments: len(s.trainees)}
	for _, c := range s.courses {
		if c.Status == models.CourseActive {
			stats.ActiveCourses++
		}
	}
	for _, t := range s.trainees {
		if t.Status == models.TraineeCompleted {
			stats.CompletedTrainings++
		}
	}
	for _, p := range s.payments {
		stats.PaymentTotal += p.Amount
	}
	return stats, nil
}

func (s *Store) ReportData(ctx context.Context, typ models.ReportType, from, to *time.Time) ([]models.ReportRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []models.ReportRow
	switch typ {
	case models.ReportEnrollment:
		for _, t := range s.trainees {
			if !withinBounds(t.EnrollmentDate, from, to) {
				continue
			}
			date := t.EnrollmentDate
			rows = append(rows, models.ReportRow{
				TraineeID:      t.TraineeID,
				Name:           t.Name,
				Course:         t.Course,
				EnrollmentDate: &date,
			})
		}
	case models.ReportCompletion:
		// Trainees without a completion date never appear, regardless of
		// status.
		for _, t := range s.trainees {
			if t.Status != models.TraineeCompleted || t.CompletionDate == nil {
				continue
			}
			if !withinBounds(*t.CompletionDate, from, to) {
				continue
			}
			enrolled := t.EnrollmentDate
			completed := *t.CompletionDate
			rows = append(rows, models.ReportRow{
				TraineeID:      t.TraineeID,
				Name:           t.Name,
				Course:         t.Course,
				EnrollmentDate: &enrolled,
				CompletionDate: &completed,
			})
		}
	case models.ReportPayment:
		for _, p := range s.payments {
			if !withinBounds(p.CreatedAt, from, to) {
				continue
			}
			date := p.CreatedAt
			rows = append(rows, models.ReportRow{
				TraineeID:     p.TraineeID,
				Name:          p.TraineeName,
				Course:        p.Course,
				ReceiptNumber: p.ReceiptNumber,
				Amount:        p.Amount,
				PaymentDate:   &date,
			})
		}
	}
	sortByID(rows, rowSortKey)
	return rows, nil
}

// withinBounds checks inclusive date bounds; a nil bound is unbounded on
// that side. Comparison is by calendar day.
func withinBounds(date time.Time, from, to *time.Time) bool {
	day := date.Truncate(24 * time.Hour)
	if from != nil && day.Before(from.Truncate(24*time.Hour)) {
		return false
	}
	if to != nil && day.After(to.Truncate(24*time.Hour)) {
		return false
	}
	return true
}

func rowSortKey(r models.ReportRow) int64 {
	if r.PaymentDate != nil {
		return r.PaymentDate.UnixNano()
	}
	if r.EnrollmentDate != nil {
		return r.EnrollmentDate.UnixNano()
	}
	return 0
}
