package memory

import (
	"context"
	"sort"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/store"
)

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}

func (s *Store) ListTrainees(ctx context.Context) ([]models.Trainee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trainees := make([]models.Trainee, 0, len(s.trainees))
	for _, t := range s.trainees {
		trainees = append(trainees, *t)
	}
	sortByID(trainees, func(t models.Trainee) int64 { return t.ID })
	return trainees, nil
}

func (s *Store) GetTrainee(ctx context.Context, id int64) (*models.Trainee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trainees[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *Store) GetTraineeByTraineeID(ctx context.Context, traineeID string) (*models.Trainee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.trainees {
		if t.TraineeID == traineeID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

// CreateTrainee assigns the numeric identity and derives the external
// trainee identifier from it. The counter only moves forward, so the
// identifier is never reused even if records are later removed.
func (s *Store) CreateTrainee(ctx context.Context, trainee models.Trainee) (*models.Trainee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.traineeSeq++
	trainee.ID = s.traineeSeq
	now := s.now().UTC()
	trainee.TraineeID = store.FormatTraineeID(now.Year(), trainee.ID)
	trainee.CreatedAt = now
	trainee.UpdatedAt = now
	if trainee.EnrollmentDate.IsZero() {
		trainee.EnrollmentDate = now
	}
	cp := trainee
	s.trainees[trainee.ID] = &cp
	return &trainee, nil
}

func (s *Store) UpdateTrainee(ctx context.Context, id int64, patch models.TraineePatch) (*models.Trainee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trainees[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	store.MergeTrainee(t, patch)
	t.UpdatedAt = s.now().UTC()
	cp := *t
	return &cp, nil
}

func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payments := make([]models.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		payments = append(payments, *p)
	}
	sortByID(payments, func(p models.Payment) int64 { return p.ID })
	return payments, nil
}

func (s *Store) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) CreatePayment(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paymentSeq++
	payment.ID = s.paymentSeq
	now := s.now().UTC()
	payment.ReceiptNumber = store.FormatReceiptNumber(now.Year(), payment.ID)
	payment.CreatedAt = now
	cp := payment
	s.payments[payment.ID] = &cp
	return &payment, nil
}

func (s *Store) UpdatePayment(ctx context.Context, id int64, patch models.PaymentPatch) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	store.MergePayment(p, patch)
	cp := *p
	return &cp, nil
}
