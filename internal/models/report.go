package models

import "time"

// ReportType enumerates the supported report kinds.
type ReportType string

const (
	ReportEnrollment ReportType = "enrollment"
	ReportCompletion ReportType = "completion"
	ReportPayment    ReportType = "payment"
)

// Valid reports whether the report type is supported.
func (t ReportType) Valid() bool {
	switch t {
	case ReportEnrollment, ReportCompletion, ReportPayment:
		return true
	}
	return false
}

// DashboardStats are the raw counters derived by scanning the collections.
// PaymentTotal is the unformatted sum; presentation formatting happens in the
// dashboard service.
type DashboardStats struct {
	TotalEnrollments   int   `db:"total_enrollments" json:"total_enrollments"`
	ActiveCourses      int   `db:"active_courses" json:"active_courses"`
	CompletedTrainings int   `db:"completed_trainings" json:"completed_trainings"`
	PaymentTotal       int64 `db:"payment_total" json:"payment_total"`
}

// ReportRow is one row of a generated report. Fields not relevant to the
// requested report type stay zero-valued.
type ReportRow struct {
	TraineeID      string     `db:"trainee_id" json:"trainee_id,omitempty"`
	Name           string     `db:"name" json:"name,omitempty"`
	Course         string     `db:"course" json:"course,omitempty"`
	EnrollmentDate *time.Time `db:"enrollment_date" json:"enrollment_date,omitempty"`
	CompletionDate *time.Time `db:"completion_date" json:"completion_date,omitempty"`
	ReceiptNumber  string     `db:"receipt_number" json:"receipt_number,omitempty"`
	Amount         int64      `db:"amount" json:"amount,omitempty"`
	PaymentDate    *time.Time `db:"payment_date" json:"payment_date,omitempty"`
}
