package models

import "time"

// AssessmentResult enumerates assessment outcomes.
type AssessmentResult string

const (
	AssessmentPassed  AssessmentResult = "Passed"
	AssessmentFailed  AssessmentResult = "Failed"
	AssessmentPending AssessmentResult = "Pending"
)

// Assessment represents a graded evaluation for a trainee. TraineeID is the
// external trainee identifier.
type Assessment struct {
	ID             int64            `db:"id" json:"id"`
	TraineeID      string           `db:"trainee_id" json:"trainee_id"`
	TraineeName    string           `db:"trainee_name" json:"trainee_name"`
	CourseID       int64            `db:"course_id" json:"course_id"`
	Course         string           `db:"course" json:"course"`
	AssessmentType string           `db:"assessment_type" json:"assessment_type"`
	Score          float64          `db:"score" json:"score"`
	MaxScore       float64          `db:"max_score" json:"max_score"`
	Result         AssessmentResult `db:"result" json:"result"`
	Feedback       string           `db:"feedback" json:"feedback"`
	AssessedBy     string           `db:"assessed_by" json:"assessed_by"`
	AssessmentDate time.Time        `db:"assessment_date" json:"assessment_date"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`
}

// AssessmentPatch carries a shallow-merge update for an assessment.
type AssessmentPatch struct {
	AssessmentType *string           `json:"assessment_type,omitempty"`
	Score          *float64          `json:"score,omitempty"`
	MaxScore       *float64          `json:"max_score,omitempty"`
	Result         *AssessmentResult `json:"result,omitempty"`
	Feedback       *string           `json:"feedback,omitempty"`
	AssessedBy     *string           `json:"assessed_by,omitempty"`
	AssessmentDate *time.Time        `json:"assessment_date,omitempty"`
}
