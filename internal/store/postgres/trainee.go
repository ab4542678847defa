package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/store"
)

func (s *Store) ListTrainees(ctx context.Context) ([]models.Trainee, error) {
	var trainees []models.Trainee
	if err := s.db.SelectContext(ctx, &trainees, "SELECT * FROM trainees ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list trainees: %w", err)
	}
	return trainees, nil
}

func (s *Store) GetTrainee(ctx context.Context, id int64) (*models.Trainee, error) {
	var trainee models.Trainee
	if err := s.db.GetContext(ctx, &trainee, "SELECT * FROM trainees WHERE id = $1", id); err != nil {
		return nil, translateErr("get trainee", err)
	}
	return &trainee, nil
}

func (s *Store) GetTraineeByTraineeID(ctx context.Context, traineeID string) (*models.Trainee, error) {
	var trainee models.Trainee
	if err := s.db.GetContext(ctx, &trainee, "SELECT * FROM trainees WHERE trainee_id = $1", traineeID); err != nil {
		return nil, translateErr("get trainee by trainee id", err)
	}
	return &trainee, nil
}

// CreateTrainee inserts the row and derives the external identifier from the
// serial id inside the same transaction. The serial feeds the suffix
// directly, so concurrent creations cannot compute the same sequence value.
func (s *Store) CreateTrainee(ctx context.Context, trainee models.Trainee) (*models.Trainee, error) {
	now := s.now().UTC()
	trainee.CreatedAt = now
	trainee.UpdatedAt = now
	if trainee.EnrollmentDate.IsZero() {
		trainee.EnrollmentDate = now
	}
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		const insert = `INSERT INTO trainees (trainee_id, name, gender, address, contact, course_id, course,
			trainer_id, trainer, enrollment_date, completion_date, status, payment, created_at, updated_at)
			VALUES ('', $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
		if err := tx.GetContext(ctx, &trainee.ID, insert,
			trainee.Name, trainee.Gender, trainee.Address, trainee.Contact,
			trainee.CourseID, trainee.Course, trainee.TrainerID, trainee.Trainer,
			trainee.EnrollmentDate, trainee.CompletionDate, trainee.Status, trainee.Payment,
			trainee.CreatedAt, trainee.UpdatedAt); err != nil {
			return translateErr("create trainee", err)
		}
		trainee.TraineeID = store.FormatTraineeID(now.Year(), trainee.ID)
		if _, err := tx.ExecContext(ctx, "UPDATE trainees SET trainee_id = $1 WHERE id = $2", trainee.TraineeID, trainee.ID); err != nil {
			return translateErr("assign trainee id", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &trainee, nil
}

func (s *Store) UpdateTrainee(ctx context.Context, id int64, patch models.TraineePatch) (*models.Trainee, error) {
	var trainee models.Trainee
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &trainee, "SELECT * FROM trainees WHERE id = $1 FOR UPDATE", id); err != nil {
			return translateErr("load trainee", err)
		}
		store.MergeTrainee(&trainee, patch)
		trainee.UpdatedAt = s.now().UTC()
		const query = `UPDATE trainees SET name = :name, gender = :gender, address = :address, contact = :contact,
			course_id = :course_id, course = :course, trainer_id = :trainer_id, trainer = :trainer,
			enrollment_date = :enrollment_date, completion_date = :completion_date,
			status = :status, payment = :payment, updated_at = :updated_at WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, query, trainee); err != nil {
			return translateErr("update trainee", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &trainee, nil
}

func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.SelectContext(ctx, &payments, "SELECT * FROM payments ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (s *Store) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.GetContext(ctx, &payment, "SELECT * FROM payments WHERE id = $1", id); err != nil {
		return nil, translateErr("get payment", err)
	}
	return &payment, nil
}

// CreatePayment derives the receipt number from the serial id inside the
// insert transaction, same scheme as CreateTrainee.
func (s *Store) CreatePayment(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	now := s.now().UTC()
	payment.CreatedAt = now
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		const insert = `INSERT INTO payments (trainee_id, trainee_name, course_id, course, amount,
			receipt_number, payment_method, status, created_at)
			VALUES ($1, $2, $3, $4, $5, '', $6, $7, $8) RETURNING id`
		if err := tx.GetContext(ctx, &payment.ID, insert,
			payment.TraineeID, payment.TraineeName, payment.CourseID, payment.Course,
			payment.Amount, payment.PaymentMethod, payment.Status, payment.CreatedAt); err != nil {
			return translateErr("create payment", err)
		}
		payment.ReceiptNumber = store.FormatReceiptNumber(now.Year(), payment.ID)
		if _, err := tx.ExecContext(ctx, "UPDATE payments SET receipt_number = $1 WHERE id = $2", payment.ReceiptNumber, payment.ID); err != nil {
			return translateErr("assign receipt number", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *Store) UpdatePayment(ctx context.Context, id int64, patch models.PaymentPatch) (*models.Payment, error) {
	var payment models.Payment
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &payment, "SELECT * FROM payments WHERE id = $1 FOR UPDATE", id); err != nil {
			return translateErr("load payment", err)
		}
		store.MergePayment(&payment, patch)
		const query = `UPDATE payments SET amount = :amount, payment_method = :payment_method, status = :status WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, query, payment); err != nil {
			return translateErr("update payment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
