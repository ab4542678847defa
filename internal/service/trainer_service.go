package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skilltrack/tms-api/internal/models"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
)

type trainerStore interface {
	ListTrainers(ctx context.Context) ([]models.Trainer, error)
	GetTrainer(ctx context.Context, id int64) (*models.Trainer, error)
	CreateTrainer(ctx context.Context, trainer models.Trainer) (*models.Trainer, error)
	UpdateTrainer(ctx context.Context, id int64, patch models.TrainerPatch) (*models.Trainer, error)
}

// CreateTrainerRequest is the payload for adding a trainer profile.
type CreateTrainerRequest struct {
	Name      string `json:"name" validate:"required"`
	Expertise string `json:"expertise"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`
}

// TrainerService manages trainer profiles.
type TrainerService struct {
	store     trainerStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTrainerService constructs a TrainerService.
func NewTrainerService(st trainerStore, validate *validator.Validate, logger *zap.Logger) *TrainerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainerService{store: st, validator: validate, logger: logger}
}

func (s *TrainerService) List(ctx context.Context) ([]models.Trainer, error) {
	trainers, err := s.store.ListTrainers(ctx)
	if err != nil {
		return nil, translateStore(err, "")
	}
	return trainers, nil
}

func (s *TrainerService) Get(ctx context.Context, id int64) (*models.Trainer, error) {
	trainer, err := s.store.GetTrainer(ctx, id)
	if err != nil {
		return nil, translateStore(err, "trainer not found")
	}
	return trainer, nil
}

func (s *TrainerService) Create(ctx context.Context, req CreateTrainerRequest) (*models.Trainer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid trainer payload")
	}
	trainer, err := s.store.CreateTrainer(ctx, models.Trainer{
		Name:      req.Name,
		Expertise: req.Expertise,
		Email:     req.Email,
		Phone:     req.Phone,
		Bio:       req.Bio,
	})
	if err != nil {
		return nil, translateStore(err, "")
	}
	return trainer, nil
}

func (s *TrainerService) Update(ctx context.Context, id int64, patch models.TrainerPatch) (*models.Trainer, error) {
	trainer, err := s.store.UpdateTrainer(ctx, id, patch)
	if err != nil {
		return nil, translateStore(err, "trainer not found")
	}
	return trainer, nil
}
