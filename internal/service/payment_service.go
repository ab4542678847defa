package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skilltrack/tms-api/internal/models"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
)

type paymentStore interface {
	ListPayments(ctx context.Context) ([]models.Payment, error)
	GetPayment(ctx context.Context, id int64) (*models.Payment, error)
	CreatePayment(ctx context.Context, payment models.Payment) (*models.Payment, error)
	UpdatePayment(ctx context.Context, id int64, patch models.PaymentPatch) (*models.Payment, error)
	GetTraineeByTraineeID(ctx context.Context, traineeID string) (*models.Trainee, error)
	UpdateTrainee(ctx context.Context, id int64, patch models.TraineePatch) (*models.Trainee, error)
}

// CreatePaymentRequest records a fee payment against a trainee's external
// identifier.
type CreatePaymentRequest struct {
	TraineeID     string               `json:"trainee_id" validate:"required"`
	Amount        int64                `json:"amount" validate:"required,gt=0"`
	PaymentMethod string               `json:"payment_method"`
	Status        models.PaymentStatus `json:"status"`
}

// PaymentService manages payment records. The trainee name and course copies
// are resolved from the referenced trainee at write time.
type PaymentService struct {
	store     paymentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(st paymentStore, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{store: st, validator: validate, logger: logger}
}

func (s *PaymentService) List(ctx context.Context) ([]models.Payment, error) {
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, translateStore(err, "")
	}
	return payments, nil
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*models.Payment, error) {
	payment, err := s.store.GetPayment(ctx, id)
	if err != nil {
		return nil, translateStore(err, "payment not found")
	}
	return payment, nil
}

func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	status := req.Status
	if status == "" {
		status = models.PaymentPaid
	}
	if status != models.PaymentPaid && status != models.PaymentUnpaid {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown payment status")
	}

	trainee, err := s.store.GetTraineeByTraineeID(ctx, req.TraineeID)
	if err != nil {
		return nil, translateStore(err, "trainee not found")
	}

	payment, err := s.store.CreatePayment(ctx, models.Payment{
		TraineeID:     trainee.TraineeID,
		TraineeName:   trainee.Name,
		CourseID:      trainee.CourseID,
		Course:        trainee.Course,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        status,
	})
	if err != nil {
		return nil, translateStore(err, "")
	}

	// Mirror a settled payment onto the trainee's payment flag.
	if payment.Status == models.PaymentPaid && trainee.Payment != models.PaymentPaid {
		paid := models.PaymentPaid
		if _, err := s.store.UpdateTrainee(ctx, trainee.ID, models.TraineePatch{Payment: &paid}); err != nil {
			s.logger.Warn("failed to mark trainee as paid", zap.Int64("trainee_id", trainee.ID), zap.Error(err))
		}
	}

	return payment, nil
}

func (s *PaymentService) Update(ctx context.Context, id int64, patch models.PaymentPatch) (*models.Payment, error) {
	if patch.Status != nil && *patch.Status != models.PaymentPaid && *patch.Status != models.PaymentUnpaid {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown payment status")
	}
	payment, err := s.store.UpdatePayment(ctx, id, patch)
	if err != nil {
		return nil, translateStore(err, "payment not found")
	}
	return payment, nil
}
