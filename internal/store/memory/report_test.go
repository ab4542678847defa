package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilltrack/tms-api/internal/models"
)

func seedDashboardFixture(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.CreateCourse(ctx, models.Course{Name: "Welding NC II", Status: models.CourseActive})
	require.NoError(t, err)
	_, err = s.CreateCourse(ctx, models.Course{Name: "Carpentry NC I", Status: models.CourseInactive})
	require.NoError(t, err)

	completion := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		trainee, err := s.CreateTrainee(ctx, models.Trainee{Name: "Completed", CourseID: 1, Course: "Welding NC II", Status: models.TraineeActive, Payment: models.PaymentPaid})
		require.NoError(t, err)
		completed := models.TraineeCompleted
		date := completion
		_, err = s.UpdateTrainee(ctx, trainee.ID, models.TraineePatch{Status: &completed, CompletionDate: &date})
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := s.CreateTrainee(ctx, models.Trainee{Name: "Active", CourseID: 1, Course: "Welding NC II", Status: models.TraineeActive, Payment: models.PaymentUnpaid})
		require.NoError(t, err)
	}

	for _, amount := range []int64{4000, 3500, 2500} {
		_, err := s.CreatePayment(ctx, models.Payment{TraineeID: "T-2026-0001", Amount: amount, Status: models.PaymentPaid})
		require.NoError(t, err)
	}
}

func TestDashboardStats(t *testing.T) {
	s := newTestStore(t)
	seedDashboardFixture(t, s)

	stats, err := s.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalEnrollments)
	assert.Equal(t, 1, stats.ActiveCourses)
	assert.Equal(t, 3, stats.CompletedTrainings)
	assert.Equal(t, int64(10000), stats.PaymentTotal)
}

func TestCompletionReportExcludesIncomplete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Completed with a date: included.
	done, err := s.CreateTrainee(ctx, models.Trainee{Name: "Done", CourseID: 1, Course: "Welding", Status: models.TraineeActive, Payment: models.PaymentPaid})
	require.NoError(t, err)
	completed := models.TraineeCompleted
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err = s.UpdateTrainee(ctx, done.ID, models.TraineePatch{Status: &completed, CompletionDate: &date})
	require.NoError(t, err)

	// Completed status but no completion date: excluded.
	noDate, err := s.CreateTrainee(ctx, models.Trainee{Name: "NoDate", CourseID: 1, Course: "Welding", Status: models.TraineeActive, Payment: models.PaymentPaid})
	require.NoError(t, err)
	_, err = s.UpdateTrainee(ctx, noDate.ID, models.TraineePatch{Status: &completed})
	require.NoError(t, err)

	// Still active: excluded.
	_, err = s.CreateTrainee(ctx, models.Trainee{Name: "Active", CourseID: 1, Course: "Welding", Status: models.TraineeActive, Payment: models.PaymentUnpaid})
	require.NoError(t, err)

	rows, err := s.ReportData(ctx, models.ReportCompletion, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Done", rows[0].Name)
	require.NotNil(t, rows[0].CompletionDate)
}

func TestCompletionReportDateBounds(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	completed := models.TraineeCompleted

	dates := map[string]time.Time{
		"Early":  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		"Inside": time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		"Edge":   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		"Late":   time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
	}
	for name, d := range dates {
		trainee, err := s.CreateTrainee(ctx, models.Trainee{Name: name, CourseID: 1, Course: "Welding", Status: models.TraineeActive, Payment: models.PaymentPaid})
		require.NoError(t, err)
		date := d
		_, err = s.UpdateTrainee(ctx, trainee.ID, models.TraineePatch{Status: &completed, CompletionDate: &date})
		require.NoError(t, err)
	}

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rows, err := s.ReportData(ctx, models.ReportCompletion, &from, &to)
	require.NoError(t, err)

	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	// Bounds are inclusive on both sides.
	assert.ElementsMatch(t, []string{"Inside", "Edge"}, names)
}

// A record written at any time-of-day on the `to` day is inside the range:
// bounds compare by calendar day, not by timestamp.
func TestReportToBoundIncludesWholeDay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.now = func() time.Time { return time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC) }

	_, err := s.CreatePayment(ctx, models.Payment{TraineeID: "T-2026-0001", TraineeName: "Juan", Course: "Welding", Amount: 2500, Status: models.PaymentPaid})
	require.NoError(t, err)
	_, err = s.CreateTrainee(ctx, models.Trainee{Name: "SameDay", CourseID: 1, Course: "Welding", Status: models.TraineeActive, Payment: models.PaymentUnpaid})
	require.NoError(t, err)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC) // parsed "2026-03-05" is midnight

	payments, err := s.ReportData(ctx, models.ReportPayment, &from, &to)
	require.NoError(t, err)
	require.Len(t, payments, 1)

	enrollments, err := s.ReportData(ctx, models.ReportEnrollment, &from, &to)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
}

func TestEnrollmentReportIncludesAllTrainees(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := s.CreateTrainee(ctx, models.Trainee{Name: name, CourseID: 1, Course: "Welding", Status: models.TraineeActive, Payment: models.PaymentUnpaid})
		require.NoError(t, err)
	}

	rows, err := s.ReportData(ctx, models.ReportEnrollment, nil, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	for _, r := range rows {
		assert.NotEmpty(t, r.TraineeID)
		assert.NotNil(t, r.EnrollmentDate)
	}
}

func TestPaymentReportRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreatePayment(ctx, models.Payment{TraineeID: "T-2026-0001", TraineeName: "Juan", Course: "Welding", Amount: 2500, Status: models.PaymentPaid})
	require.NoError(t, err)

	rows, err := s.ReportData(ctx, models.ReportPayment, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Juan", rows[0].Name)
	assert.Equal(t, int64(2500), rows[0].Amount)
	assert.NotEmpty(t, rows[0].ReceiptNumber)
	require.NotNil(t, rows[0].PaymentDate)
}
