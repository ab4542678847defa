package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skilltrack/tms-api/internal/models"
	memorystore "github.com/skilltrack/tms-api/internal/store/memory"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
)

func newTraineeService(t *testing.T) (*TraineeService, *memorystore.Store) {
	t.Helper()
	st, err := memorystore.New()
	require.NoError(t, err)
	return NewTraineeService(st, validator.New(), zap.NewNop()), st
}

func seedCourse(t *testing.T, st *memorystore.Store, name string) *models.Course {
	t.Helper()
	course, err := st.CreateCourse(context.Background(), models.Course{Name: name, Status: models.CourseActive})
	require.NoError(t, err)
	return course
}

func requireValidation(t *testing.T, err error) {
	t.Helper()
	var typed *appErrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, appErrors.ErrValidation.Code, typed.Code)
}

func TestCreateTraineeRejectsUnknownStatus(t *testing.T) {
	svc, st := newTraineeService(t)
	course := seedCourse(t, st, "Welding")

	_, err := svc.Create(context.Background(), CreateTraineeRequest{
		Name:     "Juan",
		CourseID: course.ID,
		Status:   "Bogus",
	})
	requireValidation(t, err)
}

func TestCreateTraineeRejectsThreeStatePayment(t *testing.T) {
	svc, st := newTraineeService(t)
	course := seedCourse(t, st, "Welding")

	// "Partial" is the legacy three-state vocabulary; only Paid/Unpaid exist.
	_, err := svc.Create(context.Background(), CreateTraineeRequest{
		Name:     "Juan",
		CourseID: course.ID,
		Payment:  "Partial",
	})
	requireValidation(t, err)
}

func TestCreateTraineeDefaultsStatusAndPayment(t *testing.T) {
	svc, st := newTraineeService(t)
	course := seedCourse(t, st, "Welding")

	created, err := svc.Create(context.Background(), CreateTraineeRequest{Name: "Juan", CourseID: course.ID})
	require.NoError(t, err)
	assert.Equal(t, models.TraineeActive, created.Status)
	assert.Equal(t, models.PaymentUnpaid, created.Payment)
}

func TestUpdateTraineeRejectsUnknownVocabulary(t *testing.T) {
	svc, st := newTraineeService(t)
	course := seedCourse(t, st, "Welding")

	created, err := svc.Create(context.Background(), CreateTraineeRequest{Name: "Juan", CourseID: course.ID})
	require.NoError(t, err)

	badStatus := models.TraineeStatus("Paused")
	_, err = svc.Update(context.Background(), created.ID, models.TraineePatch{Status: &badStatus})
	requireValidation(t, err)

	badPayment := models.PaymentStatus("Partial")
	_, err = svc.Update(context.Background(), created.ID, models.TraineePatch{Payment: &badPayment})
	requireValidation(t, err)

	// The record is untouched after the rejected patches.
	stored, err := st.GetTrainee(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TraineeActive, stored.Status)
	assert.Equal(t, models.PaymentUnpaid, stored.Payment)
}

func TestTrainerCountersTrackAssignments(t *testing.T) {
	svc, st := newTraineeService(t)
	ctx := context.Background()
	welding := seedCourse(t, st, "Welding")
	carpentry := seedCourse(t, st, "Carpentry")

	trainer, err := st.CreateTrainer(ctx, models.Trainer{Name: "Reyes"})
	require.NoError(t, err)

	for _, c := range []*models.Course{welding, welding, carpentry} {
		_, err := svc.Create(ctx, CreateTraineeRequest{Name: "T", CourseID: c.ID, TrainerID: &trainer.ID})
		require.NoError(t, err)
	}

	got, err := st.GetTrainer(ctx, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalTrainees)
	// Two distinct courses have trainees assigned to this trainer.
	assert.Equal(t, 2, got.ActiveCourses)

	course, err := st.GetCourse(ctx, welding.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, course.EnrollmentCount)
}
