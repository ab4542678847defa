package models

import "time"

// TrainingResult captures the final outcome of a trainee's training,
// including an optional issued certificate. CertificateNumber is assigned by
// the backend only when a certificate is issued and is immutable afterwards.
type TrainingResult struct {
	ID                int64      `db:"id" json:"id"`
	TraineeID         string     `db:"trainee_id" json:"trainee_id"`
	TraineeName       string     `db:"trainee_name" json:"trainee_name"`
	CourseID          int64      `db:"course_id" json:"course_id"`
	Course            string     `db:"course" json:"course"`
	Competencies      string     `db:"competencies" json:"competencies"`
	OverallRating     float64    `db:"overall_rating" json:"overall_rating"`
	CertificateIssued bool       `db:"certificate_issued" json:"certificate_issued"`
	CertificateNumber string     `db:"certificate_number" json:"certificate_number,omitempty"`
	IssuedDate        *time.Time `db:"issued_date" json:"issued_date,omitempty"`
	Remarks           string     `db:"remarks" json:"remarks"`
	ApprovedBy        string     `db:"approved_by" json:"approved_by"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// TrainingResultPatch carries a shallow-merge update for a training result.
type TrainingResultPatch struct {
	Competencies  *string    `json:"competencies,omitempty"`
	OverallRating *float64   `json:"overall_rating,omitempty"`
	IssuedDate    *time.Time `json:"issued_date,omitempty"`
	Remarks       *string    `json:"remarks,omitempty"`
	ApprovedBy    *string    `json:"approved_by,omitempty"`
}
