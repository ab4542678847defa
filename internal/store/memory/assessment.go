package memory

import (
	"context"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/store"
)

func (s *Store) ListAssessments(ctx context.Context) ([]models.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assessments := make([]models.Assessment, 0, len(s.assessments))
	for _, a := range s.assessments {
		assessments = append(assessments, *a)
	}
	sortByID(assessments, func(a models.Assessment) int64 { return a.ID })
	return assessments, nil
}

func (s *Store) ListAssessmentsByTrainee(ctx context.Context, traineeID string) ([]models.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var assessments []models.Assessment
	for _, a := range s.assessments {
		if a.TraineeID == traineeID {
			assessments = append(assessments, *a)
		}
	}
	sortByID(assessments, func(a models.Assessment) int64 { return a.ID })
	return assessments, nil
}

func (s *Store) GetAssessment(ctx context.Context, id int64) (*models.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assessments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *Store) CreateAssessment(ctx context.Context, assessment models.Assessment) (*models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assessmentSeq++
	assessment.ID = s.assessmentSeq
	now := s.now().UTC()
	assessment.CreatedAt = now
	assessment.UpdatedAt = now
	if assessment.AssessmentDate.IsZero() {
		assessment.AssessmentDate = now
	}
	cp := assessment
	s.assessments[assessment.ID] = &cp
	return &assessment, nil
}

func (s *Store) UpdateAssessment(ctx context.Context, id int64, patch models.AssessmentPatch) (*models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assessments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	store.MergeAssessment(a, patch)
	a.UpdatedAt = s.now().UTC()
	cp := *a
	return &cp, nil
}

func (s *Store) ListTrainingResults(ctx context.Context) ([]models.TrainingResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.TrainingResult, 0, len(s.trainingResults))
	for _, r := range s.trainingResults {
		results = append(results, *r)
	}
	sortByID(results, func(r models.TrainingResult) int64 { return r.ID })
	return results, nil
}

func (s *Store) ListTrainingResultsByTrainee(ctx context.Context, traineeID string) ([]models.TrainingResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []models.TrainingResult
	for _, r := range s.trainingResults {
		if r.TraineeID == traineeID {
			results = append(results, *r)
		}
	}
	sortByID(results, func(r models.TrainingResult) int64 { return r.ID })
	return results, nil
}

func (s *Store) GetTrainingResult(ctx context.Context, id int64) (*models.TrainingResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.trainingResults[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// CreateTrainingResult generates a certificate number only when the record
// is created with a certificate issued.
func (s *Store) CreateTrainingResult(ctx context.Context, result models.TrainingResult) (*models.TrainingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trainingResultSeq++
	result.ID = s.trainingResultSeq
	now := s.now().UTC()
	result.CreatedAt = now
	result.UpdatedAt = now
	if result.CertificateIssued {
		result.CertificateNumber = store.FormatCertificateNumber(now.Year(), result.ID)
		if result.IssuedDate == nil {
			issued := now
			result.IssuedDate = &issued
		}
	} else {
		result.CertificateNumber = ""
		result.IssuedDate = nil
	}
	cp := result
	s.trainingResults[result.ID] = &cp
	return &result, nil
}

func (s *Store) UpdateTrainingResult(ctx context.Context, id int64, patch models.TrainingResultPatch) (*models.TrainingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.trainingResults[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	store.MergeTrainingResult(r, patch)
	r.UpdatedAt = s.now().UTC()
	cp := *r
	return &cp, nil
}
