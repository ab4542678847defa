package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/store"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
)

type traineeStore interface {
	ListTrainees(ctx context.Context) ([]models.Trainee, error)
	GetTrainee(ctx context.Context, id int64) (*models.Trainee, error)
	CreateTrainee(ctx context.Context, trainee models.Trainee) (*models.Trainee, error)
	UpdateTrainee(ctx context.Context, id int64, patch models.TraineePatch) (*models.Trainee, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error)
	GetTrainer(ctx context.Context, id int64) (*models.Trainer, error)
	UpdateTrainer(ctx context.Context, id int64, patch models.TrainerPatch) (*models.Trainer, error)
}

// CreateTraineeRequest is the payload for enrolling a trainee.
type CreateTraineeRequest struct {
	Name           string                `json:"name" validate:"required"`
	Gender         string                `json:"gender"`
	Address        string                `json:"address"`
	Contact        string                `json:"contact"`
	CourseID       int64                 `json:"course_id" validate:"required"`
	TrainerID      *int64                `json:"trainer_id"`
	EnrollmentDate *time.Time            `json:"enrollment_date"`
	Status         models.TraineeStatus  `json:"status"`
	Payment        models.PaymentStatus  `json:"payment"`
}

// TraineeService manages trainee enrollment records. The denormalized course
// and trainer names are resolved here at write time; backends store them as
// given and never recompute them on read.
type TraineeService struct {
	store     traineeStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTraineeService constructs a TraineeService.
func NewTraineeService(st traineeStore, validate *validator.Validate, logger *zap.Logger) *TraineeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TraineeService{store: st, validator: validate, logger: logger}
}

func (s *TraineeService) List(ctx context.Context) ([]models.Trainee, error) {
	trainees, err := s.store.ListTrainees(ctx)
	if err != nil {
		return nil, translateStore(err, "")
	}
	return trainees, nil
}

func (s *TraineeService) Get(ctx context.Context, id int64) (*models.Trainee, error) {
	trainee, err := s.store.GetTrainee(ctx, id)
	if err != nil {
		return nil, translateStore(err, "trainee not found")
	}
	return trainee, nil
}

func (s *TraineeService) Create(ctx context.Context, req CreateTraineeRequest) (*models.Trainee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid trainee payload")
	}

	course, err := s.store.GetCourse(ctx, req.CourseID)
	if err != nil {
		return nil, translateStore(err, "course not found")
	}

	trainee := models.Trainee{
		Name:     req.Name,
		Gender:   req.Gender,
		Address:  req.Address,
		Contact:  req.Contact,
		CourseID: course.ID,
		Course:   course.Name,
		Status:   req.Status,
		Payment:  req.Payment,
	}
	if trainee.Status == "" {
		trainee.Status = models.TraineeActive
	}
	if !validTraineeStatus(trainee.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown trainee status")
	}
	if trainee.Payment == "" {
		trainee.Payment = models.PaymentUnpaid
	}
	if trainee.Payment != models.PaymentPaid && trainee.Payment != models.PaymentUnpaid {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown payment status")
	}
	if req.EnrollmentDate != nil {
		trainee.EnrollmentDate = *req.EnrollmentDate
	}
	if req.TrainerID != nil {
		trainer, err := s.store.GetTrainer(ctx, *req.TrainerID)
		if err != nil {
			return nil, translateStore(err, "trainer not found")
		}
		trainee.TrainerID = &trainer.ID
		trainee.Trainer = trainer.Name
	}

	created, err := s.store.CreateTrainee(ctx, trainee)
	if err != nil {
		return nil, translateStore(err, "")
	}

	s.bumpCounters(ctx, created)

	return created, nil
}

func (s *TraineeService) Update(ctx context.Context, id int64, patch models.TraineePatch) (*models.Trainee, error) {
	if patch.Status != nil && !validTraineeStatus(*patch.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown trainee status")
	}
	if patch.Payment != nil && *patch.Payment != models.PaymentPaid && *patch.Payment != models.PaymentUnpaid {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown payment status")
	}

	// Re-resolve denormalized names when the reference changes so the copy
	// stays consistent with its source.
	if patch.CourseID != nil {
		course, err := s.store.GetCourse(ctx, *patch.CourseID)
		if err != nil {
			return nil, translateStore(err, "course not found")
		}
		patch.Course = &course.Name
	}
	if patch.TrainerID != nil {
		trainer, err := s.store.GetTrainer(ctx, *patch.TrainerID)
		if err != nil {
			return nil, translateStore(err, "trainer not found")
		}
		patch.Trainer = &trainer.Name
	}

	trainee, err := s.store.UpdateTrainee(ctx, id, patch)
	if err != nil {
		return nil, translateStore(err, "trainee not found")
	}
	return trainee, nil
}

func validTraineeStatus(s models.TraineeStatus) bool {
	switch s {
	case models.TraineeActive, models.TraineeCompleted, models.TraineeDropped:
		return true
	}
	return false
}

// bumpCounters maintains the denormalized enrollment counters. Failures are
// logged, not surfaced: the counters are read-optimizations and aggregation
// reads derive their own totals.
func (s *TraineeService) bumpCounters(ctx context.Context, trainee *models.Trainee) {
	course, err := s.store.GetCourse(ctx, trainee.CourseID)
	if err == nil {
		count := course.EnrollmentCount + 1
		if _, err := s.store.UpdateCourse(ctx, course.ID, models.CoursePatch{EnrollmentCount: &count}); err != nil {
			s.logger.Warn("failed to bump course enrollment count", zap.Int64("course_id", course.ID), zap.Error(err))
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		s.logger.Warn("failed to load course for counter bump", zap.Int64("course_id", trainee.CourseID), zap.Error(err))
	}

	if trainee.TrainerID == nil {
		return
	}
	trainer, err := s.store.GetTrainer(ctx, *trainee.TrainerID)
	if err != nil {
		s.logger.Warn("failed to load trainer for counter bump", zap.Int64("trainer_id", *trainee.TrainerID), zap.Error(err))
		return
	}
	total := trainer.TotalTrainees + 1
	patch := models.TrainerPatch{TotalTrainees: &total}
	if active, err := s.activeCourseCount(ctx, trainer.ID); err == nil {
		patch.ActiveCourses = &active
	} else {
		s.logger.Warn("failed to derive trainer course count", zap.Int64("trainer_id", trainer.ID), zap.Error(err))
	}
	if _, err := s.store.UpdateTrainer(ctx, trainer.ID, patch); err != nil {
		s.logger.Warn("failed to bump trainer trainee count", zap.Int64("trainer_id", trainer.ID), zap.Error(err))
	}
}

// activeCourseCount derives the number of distinct courses with at least one
// trainee assigned to the trainer. The created trainee is already stored when
// this runs, so its course is counted.
func (s *TraineeService) activeCourseCount(ctx context.Context, trainerID int64) (int, error) {
	trainees, err := s.store.ListTrainees(ctx)
	if err != nil {
		return 0, err
	}
	courses := make(map[int64]struct{})
	for _, t := range trainees {
		if t.TrainerID != nil && *t.TrainerID == trainerID {
			courses[t.CourseID] = struct{}{}
		}
	}
	return len(courses), nil
}
