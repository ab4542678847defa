package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skilltrack/tms-api/internal/models"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
)

type assessmentStore interface {
	ListAssessments(ctx context.Context) ([]models.Assessment, error)
	ListAssessmentsByTrainee(ctx context.Context, traineeID string) ([]models.Assessment, error)
	GetAssessment(ctx context.Context, id int64) (*models.Assessment, error)
	CreateAssessment(ctx context.Context, assessment models.Assessment) (*models.Assessment, error)
	UpdateAssessment(ctx context.Context, id int64, patch models.AssessmentPatch) (*models.Assessment, error)
	GetTraineeByTraineeID(ctx context.Context, traineeID string) (*models.Trainee, error)
}

// CreateAssessmentRequest records a graded evaluation for a trainee.
type CreateAssessmentRequest struct {
	TraineeID      string                  `json:"trainee_id" validate:"required"`
	AssessmentType string                  `json:"assessment_type" validate:"required"`
	Score          float64                 `json:"score" validate:"gte=0"`
	MaxScore       float64                 `json:"max_score" validate:"gt=0"`
	Result         models.AssessmentResult `json:"result"`
	Feedback       string                  `json:"feedback"`
	AssessedBy     string                  `json:"assessed_by"`
	AssessmentDate *time.Time              `json:"assessment_date"`
}

// AssessmentService manages trainee assessments.
type AssessmentService struct {
	store     assessmentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssessmentService constructs an AssessmentService.
func NewAssessmentService(st assessmentStore, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{store: st, validator: validate, logger: logger}
}

func (s *AssessmentService) List(ctx context.Context) ([]models.Assessment, error) {
	assessments, err := s.store.ListAssessments(ctx)
	if err != nil {
		return nil, translateStore(err, "")
	}
	return assessments, nil
}

func (s *AssessmentService) ListByTrainee(ctx context.Context, traineeID string) ([]models.Assessment, error) {
	assessments, err := s.store.ListAssessmentsByTrainee(ctx, traineeID)
	if err != nil {
		return nil, translateStore(err, "")
	}
	return assessments, nil
}

func (s *AssessmentService) Get(ctx context.Context, id int64) (*models.Assessment, error) {
	assessment, err := s.store.GetAssessment(ctx, id)
	if err != nil {
		return nil, translateStore(err, "assessment not found")
	}
	return assessment, nil
}

func (s *AssessmentService) Create(ctx context.Context, req CreateAssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}
	result := req.Result
	if result == "" {
		result = models.AssessmentPending
	}
	if result != models.AssessmentPassed && result != models.AssessmentFailed && result != models.AssessmentPending {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown assessment result")
	}

	trainee, err := s.store.GetTraineeByTraineeID(ctx, req.TraineeID)
	if err != nil {
		return nil, translateStore(err, "trainee not found")
	}

	assessment := models.Assessment{
		TraineeID:      trainee.TraineeID,
		TraineeName:    trainee.Name,
		CourseID:       trainee.CourseID,
		Course:         trainee.Course,
		AssessmentType: req.AssessmentType,
		Score:          req.Score,
		MaxScore:       req.MaxScore,
		Result:         result,
		Feedback:       req.Feedback,
		AssessedBy:     req.AssessedBy,
	}
	if req.AssessmentDate != nil {
		assessment.AssessmentDate = *req.AssessmentDate
	}

	created, err := s.store.CreateAssessment(ctx, assessment)
	if err != nil {
		return nil, translateStore(err, "")
	}
	return created, nil
}

func (s *AssessmentService) Update(ctx context.Context, id int64, patch models.AssessmentPatch) (*models.Assessment, error) {
	if patch.Result != nil {
		switch *patch.Result {
		case models.AssessmentPassed, models.AssessmentFailed, models.AssessmentPending:
		default:
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown assessment result")
		}
	}
	assessment, err := s.store.UpdateAssessment(ctx, id, patch)
	if err != nil {
		return nil, translateStore(err, "assessment not found")
	}
	return assessment, nil
}
