// Package store defines the persistence contract every backend must satisfy.
// Two implementations exist: an in-process reference backend (memory) and a
// durable PostgreSQL backend (postgres). Callers select one at process
// startup and never special-case which is active.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/skilltrack/tms-api/internal/models"
)

// Sentinel errors shared by all backends. Services translate these into the
// HTTP-aware taxonomy; backends never panic on an absent id.
var (
	ErrNotFound = errors.New("store: record not found")
	ErrConflict = errors.New("store: unique constraint violated")
)

// Store is the single persistence contract. Create assigns the numeric
// identity (and any derived external identifier) exactly once; Update applies
// shallow-merge semantics and returns the merged record, or ErrNotFound.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)

	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, course models.Course) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error)

	ListTrainers(ctx context.Context) ([]models.Trainer, error)
	GetTrainer(ctx context.Context, id int64) (*models.Trainer, error)
	CreateTrainer(ctx context.Context, trainer models.Trainer) (*models.Trainer, error)
	UpdateTrainer(ctx context.Context, id int64, patch models.TrainerPatch) (*models.Trainer, error)

	ListTrainees(ctx context.Context) ([]models.Trainee, error)
	GetTrainee(ctx context.Context, id int64) (*models.Trainee, error)
	GetTraineeByTraineeID(ctx context.Context, traineeID string) (*models.Trainee, error)
	CreateTrainee(ctx context.Context, trainee models.Trainee) (*models.Trainee, error)
	UpdateTrainee(ctx context.Context, id int64, patch models.TraineePatch) (*models.Trainee, error)

	ListPayments(ctx context.Context) ([]models.Payment, error)
	GetPayment(ctx context.Context, id int64) (*models.Payment, error)
	CreatePayment(ctx context.Context, payment models.Payment) (*models.Payment, error)
	UpdatePayment(ctx context.Context, id int64, patch models.PaymentPatch) (*models.Payment, error)

	ListAssessments(ctx context.Context) ([]models.Assessment, error)
	ListAssessmentsByTrainee(ctx context.Context, traineeID string) ([]models.Assessment, error)
	GetAssessment(ctx context.Context, id int64) (*models.Assessment, error)
	CreateAssessment(ctx context.Context, assessment models.Assessment) (*models.Assessment, error)
	UpdateAssessment(ctx context.Context, id int64, patch models.AssessmentPatch) (*models.Assessment, error)

	ListTrainingResults(ctx context.Context) ([]models.TrainingResult, error)
	ListTrainingResultsByTrainee(ctx context.Context, traineeID string) ([]models.TrainingResult, error)
	GetTrainingResult(ctx context.Context, id int64) (*models.TrainingResult, error)
	CreateTrainingResult(ctx context.Context, result models.TrainingResult) (*models.TrainingResult, error)
	UpdateTrainingResult(ctx context.Context, id int64, patch models.TrainingResultPatch) (*models.TrainingResult, error)

	// DashboardStats derives counters across collections in one consistent
	// read. ReportData applies date bounds (inclusive, either side optional)
	// on the report type's relevant date field.
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	ReportData(ctx context.Context, typ models.ReportType, from, to *time.Time) ([]models.ReportRow, error)

	// Sessions exposes the session-store handle used by the identity
	// provider. Opaque to the rest of the contract.
	Sessions() SessionStore
}

// SessionStore persists refresh tokens for the identity provider.
type SessionStore interface {
	CreateRefreshToken(ctx context.Context, token models.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error
	RevokeUserRefreshTokens(ctx context.Context, userID int64) error
}
