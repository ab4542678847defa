package postgres

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilltrack/tms-api/internal/models"
)

func TestDashboardStatsSingleStatement(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"total_enrollments", "active_courses", "completed_trainings", "payment_total"}).
			AddRow(5, 1, 3, 10000))

	stats, err := st.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalEnrollments)
	assert.Equal(t, 1, stats.ActiveCourses)
	assert.Equal(t, 3, stats.CompletedTrainings)
	assert.Equal(t, int64(10000), stats.PaymentTotal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletionReportFiltersAtSQLLevel(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	completion := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	enrollment := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT trainee_id, name, course, enrollment_date, completion_date FROM trainees").
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"trainee_id", "name", "course", "enrollment_date", "completion_date"}).
			AddRow("T-2026-0001", "Juan", "Welding", enrollment, completion))

	rows, err := st.ReportData(context.Background(), models.ReportCompletion, &from, &to)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "T-2026-0001", rows[0].TraineeID)
	require.NotNil(t, rows[0].CompletionDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentReportUnbounded(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()

	enrollment := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT trainee_id, name, course, enrollment_date FROM trainees").
		WillReturnRows(sqlmock.NewRows([]string{"trainee_id", "name", "course", "enrollment_date"}).
			AddRow("T-2026-0001", "Juan", "Welding", enrollment).
			AddRow("T-2026-0002", "Maria", "Carpentry", enrollment))

	rows, err := st.ReportData(context.Background(), models.ReportEnrollment, nil, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Bounds must compare by calendar day: created_at always carries a
// time-of-day, so a plain `created_at <= to` against a midnight bound would
// drop every record written later on the `to` day.
func TestPaymentReportBoundsCompareByDay(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	paidAt := time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)created_at::date >= \$1::date.*created_at::date <= \$2::date`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"trainee_id", "name", "course", "receipt_number", "amount", "payment_date"}).
			AddRow("T-2026-0001", "Juan", "Welding", "RN-2026-001", 2500, paidAt))

	rows, err := st.ReportData(context.Background(), models.ReportPayment, &from, &to)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentReportBoundsCompareByDay(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()

	to := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	enrolled := time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)enrollment_date::date >= \$1::date.*enrollment_date::date <= \$2::date`).
		WithArgs(nil, to).
		WillReturnRows(sqlmock.NewRows([]string{"trainee_id", "name", "course", "enrollment_date"}).
			AddRow("T-2026-0004", "Ana", "Welding", enrolled))

	rows, err := st.ReportData(context.Background(), models.ReportEnrollment, nil, &to)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentReportAliasesColumns(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()

	created := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT trainee_id, trainee_name AS name, course, receipt_number, amount, created_at AS payment_date").
		WillReturnRows(sqlmock.NewRows([]string{"trainee_id", "name", "course", "receipt_number", "amount", "payment_date"}).
			AddRow("T-2026-0001", "Juan", "Welding", "RN-2026-001", 2500, created))

	rows, err := st.ReportData(context.Background(), models.ReportPayment, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "RN-2026-001", rows[0].ReceiptNumber)
	assert.Equal(t, int64(2500), rows[0].Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}
