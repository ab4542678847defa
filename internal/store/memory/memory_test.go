package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New()
	require.NoError(t, err)
	return s
}

func TestSeededUsers(t *testing.T) {
	s := newTestStore(t)

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)

	admin, err := s.GetUserByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	officer, err := s.GetUserByUsername(context.Background(), "officer")
	require.NoError(t, err)
	assert.Equal(t, models.RoleEnrollmentOfficer, officer.Role)

	cashier, err := s.GetUserByUsername(context.Background(), "cashier")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCashier, cashier.Role)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateUser(context.Background(), models.User{Username: "admin", PasswordHash: "x", Name: "Dup", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestCourseRoundTrip(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateCourse(context.Background(), models.Course{
		Name:        "Welding NC II",
		Description: "Basic welding",
		Duration:    "3 months",
		Status:      models.CourseActive,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := s.GetCourse(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCoursePartialMerge(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateCourse(context.Background(), models.Course{
		Name:        "Welding NC II",
		Description: "Basic welding",
		Duration:    "3 months",
		Status:      models.CourseActive,
	})
	require.NoError(t, err)

	inactive := models.CourseInactive
	updated, err := s.UpdateCourse(context.Background(), created.ID, models.CoursePatch{Status: &inactive})
	require.NoError(t, err)

	assert.Equal(t, models.CourseInactive, updated.Status)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Duration, updated.Duration)
	assert.Equal(t, created.EnrollmentCount, updated.EnrollmentCount)
}

func TestGetNotFoundSentinels(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetUser(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetCourse(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetTrainer(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetTrainee(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetPayment(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetAssessment(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetTrainingResult(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetTraineeByTraineeID(ctx, "T-1999-0001")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateNotFoundSentinels(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	name := "Nobody"
	_, err := s.UpdateCourse(ctx, 999, models.CoursePatch{Name: &name})
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.UpdateTrainee(ctx, 999, models.TraineePatch{Name: &name})
	assert.ErrorIs(t, err, store.ErrNotFound)
	paid := models.PaymentPaid
	_, err = s.UpdatePayment(ctx, 999, models.PaymentPatch{Status: &paid})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTraineeExternalIDFormat(t *testing.T) {
	s := newTestStore(t)
	year := time.Now().UTC().Year()

	first, err := s.CreateTrainee(context.Background(), models.Trainee{Name: "Juan", CourseID: 1, Course: "Welding", Status: models.TraineeActive, Payment: models.PaymentUnpaid})
	require.NoError(t, err)
	second, err := s.CreateTrainee(context.Background(), models.Trainee{Name: "Maria", CourseID: 1, Course: "Welding", Status: models.TraineeActive, Payment: models.PaymentUnpaid})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("T-%d-0001", year), first.TraineeID)
	assert.Equal(t, fmt.Sprintf("T-%d-0002", year), second.TraineeID)

	byExternal, err := s.GetTraineeByTraineeID(context.Background(), first.TraineeID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, byExternal.ID)
}

func TestTraineePartialMergeKeepsExternalID(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateTrainee(context.Background(), models.Trainee{
		Name:     "Juan",
		Gender:   "Male",
		CourseID: 1,
		Course:   "Welding",
		Status:   models.TraineeActive,
		Payment:  models.PaymentUnpaid,
	})
	require.NoError(t, err)

	completed := models.TraineeCompleted
	completionDate := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	updated, err := s.UpdateTrainee(context.Background(), created.ID, models.TraineePatch{
		Status:         &completed,
		CompletionDate: &completionDate,
	})
	require.NoError(t, err)

	assert.Equal(t, created.TraineeID, updated.TraineeID)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Gender, updated.Gender)
	assert.Equal(t, models.TraineeCompleted, updated.Status)
	require.NotNil(t, updated.CompletionDate)
	assert.True(t, completionDate.Equal(*updated.CompletionDate))
	assert.Equal(t, created.EnrollmentDate, updated.EnrollmentDate)
}

func TestReceiptNumberFormat(t *testing.T) {
	s := newTestStore(t)
	year := time.Now().UTC().Year()

	payment, err := s.CreatePayment(context.Background(), models.Payment{
		TraineeID: "T-2026-0001",
		Amount:    5000,
		Status:    models.PaymentPaid,
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("RN-%d-001", year), payment.ReceiptNumber)
	assert.False(t, payment.CreatedAt.IsZero())
}

func TestCertificateNumberOnlyWhenIssued(t *testing.T) {
	s := newTestStore(t)
	year := time.Now().UTC().Year()

	withCert, err := s.CreateTrainingResult(context.Background(), models.TrainingResult{
		TraineeID:         "T-2026-0001",
		OverallRating:     4.5,
		CertificateIssued: true,
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("CERT-%d-0001", year), withCert.CertificateNumber)
	require.NotNil(t, withCert.IssuedDate)

	withoutCert, err := s.CreateTrainingResult(context.Background(), models.TrainingResult{
		TraineeID:         "T-2026-0002",
		OverallRating:     3.0,
		CertificateIssued: false,
	})
	require.NoError(t, err)
	assert.Empty(t, withoutCert.CertificateNumber)
	assert.Nil(t, withoutCert.IssuedDate)
}

func TestConcurrentPaymentsDistinctReceipts(t *testing.T) {
	s := newTestStore(t)
	const n = 50

	var wg sync.WaitGroup
	receipts := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.CreatePayment(context.Background(), models.Payment{
				TraineeID: "T-2026-0001",
				Amount:    100,
				Status:    models.PaymentPaid,
			})
			assert.NoError(t, err)
			receipts <- p.ReceiptNumber
		}()
	}
	wg.Wait()
	close(receipts)

	seen := make(map[string]struct{}, n)
	for r := range receipts {
		_, dup := seen[r]
		assert.False(t, dup, "duplicate receipt number %s", r)
		seen[r] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestListIsDefensiveCopy(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateCourse(context.Background(), models.Course{Name: "Welding", Status: models.CourseActive})
	require.NoError(t, err)

	courses, err := s.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	courses[0].Name = "mutated"

	got, err := s.GetCourse(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Welding", got.Name)
}
