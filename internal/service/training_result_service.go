package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skilltrack/tms-api/internal/models"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
)

type trainingResultStore interface {
	ListTrainingResults(ctx context.Context) ([]models.TrainingResult, error)
	ListTrainingResultsByTrainee(ctx context.Context, traineeID string) ([]models.TrainingResult, error)
	GetTrainingResult(ctx context.Context, id int64) (*models.TrainingResult, error)
	CreateTrainingResult(ctx context.Context, result models.TrainingResult) (*models.TrainingResult, error)
	UpdateTrainingResult(ctx context.Context, id int64, patch models.TrainingResultPatch) (*models.TrainingResult, error)
	GetTraineeByTraineeID(ctx context.Context, traineeID string) (*models.Trainee, error)
}

// CreateTrainingResultRequest records the final outcome of a trainee's
// training. When CertificateIssued is true the backend assigns the
// certificate number.
type CreateTrainingResultRequest struct {
	TraineeID         string     `json:"trainee_id" validate:"required"`
	Competencies      string     `json:"competencies"`
	OverallRating     float64    `json:"overall_rating" validate:"gte=0,lte=5"`
	CertificateIssued bool       `json:"certificate_issued"`
	IssuedDate        *time.Time `json:"issued_date"`
	Remarks           string     `json:"remarks"`
	ApprovedBy        string     `json:"approved_by"`
}

// TrainingResultService manages final training outcomes and certificates.
type TrainingResultService struct {
	store     trainingResultStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTrainingResultService constructs a TrainingResultService.
func NewTrainingResultService(st trainingResultStore, validate *validator.Validate, logger *zap.Logger) *TrainingResultService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainingResultService{store: st, validator: validate, logger: logger}
}

func (s *TrainingResultService) List(ctx context.Context) ([]models.TrainingResult, error) {
	results, err := s.store.ListTrainingResults(ctx)
	if err != nil {
		return nil, translateStore(err, "")
	}
	return results, nil
}

func (s *TrainingResultService) ListByTrainee(ctx context.Context, traineeID string) ([]models.TrainingResult, error) {
	results, err := s.store.ListTrainingResultsByTrainee(ctx, traineeID)
	if err != nil {
		return nil, translateStore(err, "")
	}
	return results, nil
}

func (s *TrainingResultService) Get(ctx context.Context, id int64) (*models.TrainingResult, error) {
	result, err := s.store.GetTrainingResult(ctx, id)
	if err != nil {
		return nil, translateStore(err, "training result not found")
	}
	return result, nil
}

func (s *TrainingResultService) Create(ctx context.Context, req CreateTrainingResultRequest) (*models.TrainingResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid training result payload")
	}

	trainee, err := s.store.GetTraineeByTraineeID(ctx, req.TraineeID)
	if err != nil {
		return nil, translateStore(err, "trainee not found")
	}

	result := models.TrainingResult{
		TraineeID:         trainee.TraineeID,
		TraineeName:       trainee.Name,
		CourseID:          trainee.CourseID,
		Course:            trainee.Course,
		Competencies:      req.Competencies,
		OverallRating:     req.OverallRating,
		CertificateIssued: req.CertificateIssued,
		IssuedDate:        req.IssuedDate,
		Remarks:           req.Remarks,
		ApprovedBy:        req.ApprovedBy,
	}

	created, err := s.store.CreateTrainingResult(ctx, result)
	if err != nil {
		return nil, translateStore(err, "")
	}
	return created, nil
}

func (s *TrainingResultService) Update(ctx context.Context, id int64, patch models.TrainingResultPatch) (*models.TrainingResult, error) {
	if patch.OverallRating != nil && (*patch.OverallRating < 0 || *patch.OverallRating > 5) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "overall rating must be between 0 and 5")
	}
	result, err := s.store.UpdateTrainingResult(ctx, id, patch)
	if err != nil {
		return nil, translateStore(err, "training result not found")
	}
	return result, nil
}
