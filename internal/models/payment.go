package models

import "time"

// Payment represents a fee payment record. TraineeID holds the trainee's
// external identifier, not the numeric storage id; TraineeName and Course
// are denormalized display copies.
type Payment struct {
	ID            int64         `db:"id" json:"id"`
	TraineeID     string        `db:"trainee_id" json:"trainee_id"`
	TraineeName   string        `db:"trainee_name" json:"trainee_name"`
	CourseID      int64         `db:"course_id" json:"course_id"`
	Course        string        `db:"course" json:"course"`
	Amount        int64         `db:"amount" json:"amount"`
	ReceiptNumber string        `db:"receipt_number" json:"receipt_number"`
	PaymentMethod string        `db:"payment_method" json:"payment_method"`
	Status        PaymentStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// PaymentPatch carries a shallow-merge update for a payment record. The
// receipt number is immutable and deliberately absent.
type PaymentPatch struct {
	PaymentMethod *string        `json:"payment_method,omitempty"`
	Status        *PaymentStatus `json:"status,omitempty"`
	Amount        *int64         `json:"amount,omitempty"`
}
