package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/store"
)

func newStoreMock(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	st := New(sqlx.NewDb(db, "sqlmock"))
	return st, mock, func() { db.Close() }
}

func TestCreateTraineeAssignsExternalIDInTx(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()
	year := time.Now().UTC().Year()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO trainees").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec("UPDATE trainees SET trainee_id").
		WithArgs(fmt.Sprintf("T-%d-0007", year), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	trainee, err := st.CreateTrainee(context.Background(), models.Trainee{
		Name:     "Juan",
		CourseID: 1,
		Course:   "Welding",
		Status:   models.TraineeActive,
		Payment:  models.PaymentUnpaid,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), trainee.ID)
	assert.Equal(t, fmt.Sprintf("T-%d-0007", year), trainee.TraineeID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentAssignsReceiptInTx(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()
	year := time.Now().UTC().Year()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO payments").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectExec("UPDATE payments SET receipt_number").
		WithArgs(fmt.Sprintf("RN-%d-012", year), int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payment, err := st.CreatePayment(context.Background(), models.Payment{
		TraineeID: "T-2026-0001",
		Amount:    2500,
		Status:    models.PaymentPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("RN-%d-012", year), payment.ReceiptNumber)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTraineeRollsBackOnAssignFailure(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO trainees").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec("UPDATE trainees SET trainee_id").
		WillReturnError(fmt.Errorf("disk full"))
	mock.ExpectRollback()

	_, err := st.CreateTrainee(context.Background(), models.Trainee{Name: "Juan", CourseID: 1, Status: models.TraineeActive, Payment: models.PaymentUnpaid})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTraineeNotFound(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT \\* FROM trainees WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := st.GetTrainee(context.Background(), 99)
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCourseMergesBeforeWrite(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM courses WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "duration", "status", "enrollment_count", "created_at", "updated_at"}).
			AddRow(1, "Welding NC II", "Basic welding", "3 months", "Active", 4, now, now))
	mock.ExpectExec("UPDATE courses SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	inactive := models.CourseInactive
	course, err := st.UpdateCourse(context.Background(), 1, models.CoursePatch{Status: &inactive})
	require.NoError(t, err)

	// Untouched fields survive the merge.
	assert.Equal(t, "Welding NC II", course.Name)
	assert.Equal(t, "3 months", course.Duration)
	assert.Equal(t, 4, course.EnrollmentCount)
	assert.Equal(t, models.CourseInactive, course.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCourseMissingIDReturnsNotFound(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM courses WHERE id").
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "duration", "status", "enrollment_count", "created_at", "updated_at"}))
	mock.ExpectRollback()

	name := "Nobody"
	_, err := st.UpdateCourse(context.Background(), 999, models.CoursePatch{Name: &name})
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedUsersSkipsWhenPopulated(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	require.NoError(t, st.SeedUsers(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedUsersInsertsWhenEmpty(t *testing.T) {
	st, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	for i := 1; i <= 3; i++ {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i))
	}

	require.NoError(t, st.SeedUsers(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
