package models

import "time"

// CourseStatus enumerates the lifecycle states of a course offering.
type CourseStatus string

const (
	CourseActive   CourseStatus = "Active"
	CourseInactive CourseStatus = "Inactive"
)

// Course represents a training course offering.
type Course struct {
	ID              int64        `db:"id" json:"id"`
	Name            string       `db:"name" json:"name"`
	Description     string       `db:"description" json:"description"`
	Duration        string       `db:"duration" json:"duration"`
	Status          CourseStatus `db:"status" json:"status"`
	EnrollmentCount int          `db:"enrollment_count" json:"enrollment_count"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updated_at"`
}

// CoursePatch carries a shallow-merge update for a course.
type CoursePatch struct {
	Name            *string       `json:"name,omitempty"`
	Description     *string       `json:"description,omitempty"`
	Duration        *string       `json:"duration,omitempty"`
	Status          *CourseStatus `json:"status,omitempty"`
	EnrollmentCount *int          `json:"enrollment_count,omitempty"`
}
