package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/store"
)

func (s *Store) ListAssessments(ctx context.Context) ([]models.Assessment, error) {
	var assessments []models.Assessment
	if err := s.db.SelectContext(ctx, &assessments, "SELECT * FROM assessments ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return assessments, nil
}

func (s *Store) ListAssessmentsByTrainee(ctx context.Context, traineeID string) ([]models.Assessment, error) {
	var assessments []models.Assessment
	if err := s.db.SelectContext(ctx, &assessments, "SELECT * FROM assessments WHERE trainee_id = $1 ORDER BY id", traineeID); err != nil {
		return nil, fmt.Errorf("list assessments by trainee: %w", err)
	}
	return assessments, nil
}

func (s *Store) GetAssessment(ctx context.Context, id int64) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := s.db.GetContext(ctx, &assessment, "SELECT * FROM assessments WHERE id = $1", id); err != nil {
		return nil, translateErr("get assessment", err)
	}
	return &assessment, nil
}

func (s *Store) CreateAssessment(ctx context.Context, assessment models.Assessment) (*models.Assessment, error) {
	now := s.now().UTC()
	assessment.CreatedAt = now
	assessment.UpdatedAt = now
	if assessment.AssessmentDate.IsZero() {
		assessment.AssessmentDate = now
	}
	const query = `INSERT INTO assessments (trainee_id, trainee_name, course_id, course, assessment_type,
		score, max_score, result, feedback, assessed_by, assessment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	if err := s.db.GetContext(ctx, &assessment.ID, query,
		assessment.TraineeID, assessment.TraineeName, assessment.CourseID, assessment.Course,
		assessment.AssessmentType, assessment.Score, assessment.MaxScore, assessment.Result,
		assessment.Feedback, assessment.AssessedBy, assessment.AssessmentDate,
		assessment.CreatedAt, assessment.UpdatedAt); err != nil {
		return nil, translateErr("create assessment", err)
	}
	return &assessment, nil
}

func (s *Store) UpdateAssessment(ctx context.Context, id int64, patch models.AssessmentPatch) (*models.Assessment, error) {
	var assessment models.Assessment
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &assessment, "SELECT * FROM assessments WHERE id = $1 FOR UPDATE", id); err != nil {
			return translateErr("load assessment", err)
		}
		store.MergeAssessment(&assessment, patch)
		assessment.UpdatedAt = s.now().UTC()
		const query = `UPDATE assessments SET assessment_type = :assessment_type, score = :score,
			max_score = :max_score, result = :result, feedback = :feedback, assessed_by = :assessed_by,
			assessment_date = :assessment_date, updated_at = :updated_at WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, query, assessment); err != nil {
			return translateErr("update assessment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (s *Store) ListTrainingResults(ctx context.Context) ([]models.TrainingResult, error) {
	var results []models.TrainingResult
	if err := s.db.SelectContext(ctx, &results, "SELECT * FROM training_results ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list training results: %w", err)
	}
	return results, nil
}

func (s *Store) ListTrainingResultsByTrainee(ctx context.Context, traineeID string) ([]models.TrainingResult, error) {
	var results []models.TrainingResult
	if err := s.db.SelectContext(ctx, &results, "SELECT * FROM training_results WHERE trainee_id = $1 ORDER BY id", traineeID); err != nil {
		return nil, fmt.Errorf("list training results by trainee: %w", err)
	}
	return results, nil
}

func (s *Store) GetTrainingResult(ctx context.Context, id int64) (*models.TrainingResult, error) {
	var result models.TrainingResult
	if err := s.db.GetContext(ctx, &result, "SELECT * FROM training_results WHERE id = $1", id); err != nil {
		return nil, translateErr("get training result", err)
	}
	return &result, nil
}

// CreateTrainingResult assigns a certificate number from the serial id when
// the record is created with a certificate issued.
func (s *Store) CreateTrainingResult(ctx context.Context, result models.TrainingResult) (*models.TrainingResult, error) {
	now := s.now().UTC()
	result.CreatedAt = now
	result.UpdatedAt = now
	if result.CertificateIssued {
		if result.IssuedDate == nil {
			issued := now
			result.IssuedDate = &issued
		}
	} else {
		result.CertificateNumber = ""
		result.IssuedDate = nil
	}
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		const insert = `INSERT INTO training_results (trainee_id, trainee_name, course_id, course, competencies,
			overall_rating, certificate_issued, certificate_number, issued_date, remarks, approved_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, '', $8, $9, $10, $11, $12) RETURNING id`
		if err := tx.GetContext(ctx, &result.ID, insert,
			result.TraineeID, result.TraineeName, result.CourseID, result.Course, result.Competencies,
			result.OverallRating, result.CertificateIssued, result.IssuedDate,
			result.Remarks, result.ApprovedBy, result.CreatedAt, result.UpdatedAt); err != nil {
			return translateErr("create training result", err)
		}
		if result.CertificateIssued {
			result.CertificateNumber = store.FormatCertificateNumber(now.Year(), result.ID)
			if _, err := tx.ExecContext(ctx, "UPDATE training_results SET certificate_number = $1 WHERE id = $2", result.CertificateNumber, result.ID); err != nil {
				return translateErr("assign certificate number", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Store) UpdateTrainingResult(ctx context.Context, id int64, patch models.TrainingResultPatch) (*models.TrainingResult, error) {
	var result models.TrainingResult
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &result, "SELECT * FROM training_results WHERE id = $1 FOR UPDATE", id); err != nil {
			return translateErr("load training result", err)
		}
		store.MergeTrainingResult(&result, patch)
		result.UpdatedAt = s.now().UTC()
		const query = `UPDATE training_results SET competencies = :competencies, overall_rating = :overall_rating,
			issued_date = :issued_date, remarks = :remarks, approved_by = :approved_by, updated_at = :updated_at
			WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, query, result); err != nil {
			return translateErr("update training result", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
