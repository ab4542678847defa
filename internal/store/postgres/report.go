package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/skilltrack/tms-api/internal/models"
)

// DashboardStats derives all four counters in one statement so the values
// are read from a single consistent snapshot.
func (s *Store) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM trainees) AS total_enrollments,
		(SELECT COUNT(*) FROM courses WHERE status = 'Active') AS active_courses,
		(SELECT COUNT(*) FROM trainees WHERE status = 'Completed') AS completed_trainings,
		(SELECT COALESCE(SUM(amount), 0) FROM payments) AS payment_total`
	var stats models.DashboardStats
	if err := s.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}

// ReportData filters by date bounds at the database level. Bounds compare by
// calendar day on both sides, so a record written at any time on the `to` day
// is still inside the range. The completion report additionally excludes
// trainees without a completion date or whose status is not Completed.
func (s *Store) ReportData(ctx context.Context, typ models.ReportType, from, to *time.Time) ([]models.ReportRow, error) {
	var rows []models.ReportRow
	switch typ {
	case models.ReportEnrollment:
		const query = `SELECT trainee_id, name, course, enrollment_date FROM trainees
			WHERE ($1::date IS NULL OR enrollment_date::date >= $1::date)
			AND ($2::date IS NULL OR enrollment_date::date <= $2::date)
			ORDER BY enrollment_date, id`
		if err := s.db.SelectContext(ctx, &rows, query, from, to); err != nil {
			return nil, fmt.Errorf("enrollment report: %w", err)
		}
	case models.ReportCompletion:
		const query = `SELECT trainee_id, name, course, enrollment_date, completion_date FROM trainees
			WHERE status = 'Completed' AND completion_date IS NOT NULL
			AND ($1::date IS NULL OR completion_date::date >= $1::date)
			AND ($2::date IS NULL OR completion_date::date <= $2::date)
			ORDER BY completion_date, id`
		if err := s.db.SelectContext(ctx, &rows, query, from, to); err != nil {
			return nil, fmt.Errorf("completion report: %w", err)
		}
	case models.ReportPayment:
		const query = `SELECT trainee_id, trainee_name AS name, course, receipt_number, amount, created_at AS payment_date
			FROM payments
			WHERE ($1::date IS NULL OR created_at::date >= $1::date)
			AND ($2::date IS NULL OR created_at::date <= $2::date)
			ORDER BY created_at, id`
		if err := s.db.SelectContext(ctx, &rows, query, from, to); err != nil {
			return nil, fmt.Errorf("payment report: %w", err)
		}
	}
	return rows, nil
}
