package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skilltrack/tms-api/internal/models"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
)

type courseStore interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, course models.Course) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error)
}

// CreateCourseRequest is the payload for adding a course offering.
type CreateCourseRequest struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	Duration    string              `json:"duration"`
	Status      models.CourseStatus `json:"status"`
}

// CourseService manages course offerings.
type CourseService struct {
	store     courseStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(st courseStore, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{store: st, validator: validate, logger: logger}
}

func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.store.ListCourses(ctx)
	if err != nil {
		return nil, translateStore(err, "")
	}
	return courses, nil
}

func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.store.GetCourse(ctx, id)
	if err != nil {
		return nil, translateStore(err, "course not found")
	}
	return course, nil
}

func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	status := req.Status
	if status == "" {
		status = models.CourseActive
	}
	if status != models.CourseActive && status != models.CourseInactive {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown course status")
	}
	course, err := s.store.CreateCourse(ctx, models.Course{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Status:      status,
	})
	if err != nil {
		return nil, translateStore(err, "")
	}
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error) {
	if patch.Status != nil && *patch.Status != models.CourseActive && *patch.Status != models.CourseInactive {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown course status")
	}
	course, err := s.store.UpdateCourse(ctx, id, patch)
	if err != nil {
		return nil, translateStore(err, "course not found")
	}
	return course, nil
}
