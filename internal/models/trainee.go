package models

import "time"

// TraineeStatus enumerates enrollment lifecycle states.
type TraineeStatus string

const (
	TraineeActive    TraineeStatus = "Active"
	TraineeCompleted TraineeStatus = "Completed"
	TraineeDropped   TraineeStatus = "Dropped"
)

// PaymentStatus is the two-state payment vocabulary applied uniformly to
// trainees and payment records.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "Paid"
	PaymentUnpaid PaymentStatus = "Unpaid"
)

// Trainee represents an enrolled trainee. TraineeID is the human-facing
// external identifier (T-<year>-<seq>) assigned once by the backend; the
// numeric ID is the storage identity. Course and Trainer are denormalized
// display copies kept consistent at write time.
type Trainee struct {
	ID             int64         `db:"id" json:"id"`
	TraineeID      string        `db:"trainee_id" json:"trainee_id"`
	Name           string        `db:"name" json:"name"`
	Gender         string        `db:"gender" json:"gender"`
	Address        string        `db:"address" json:"address"`
	Contact        string        `db:"contact" json:"contact"`
	CourseID       int64         `db:"course_id" json:"course_id"`
	Course         string        `db:"course" json:"course"`
	TrainerID      *int64        `db:"trainer_id" json:"trainer_id,omitempty"`
	Trainer        string        `db:"trainer" json:"trainer,omitempty"`
	EnrollmentDate time.Time     `db:"enrollment_date" json:"enrollment_date"`
	CompletionDate *time.Time    `db:"completion_date" json:"completion_date,omitempty"`
	Status         TraineeStatus `db:"status" json:"status"`
	Payment        PaymentStatus `db:"payment" json:"payment"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}

// TraineePatch carries a shallow-merge update for a trainee. The external
// trainee identifier is immutable and deliberately absent.
type TraineePatch struct {
	Name           *string        `json:"name,omitempty"`
	Gender         *string        `json:"gender,omitempty"`
	Address        *string        `json:"address,omitempty"`
	Contact        *string        `json:"contact,omitempty"`
	CourseID       *int64         `json:"course_id,omitempty"`
	Course         *string        `json:"-"`
	TrainerID      *int64         `json:"trainer_id,omitempty"`
	Trainer        *string        `json:"-"`
	EnrollmentDate *time.Time     `json:"enrollment_date,omitempty"`
	CompletionDate *time.Time     `json:"completion_date,omitempty"`
	Status         *TraineeStatus `json:"status,omitempty"`
	Payment        *PaymentStatus `json:"payment,omitempty"`
}
