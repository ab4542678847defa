package models

import "time"

// Trainer represents an instructor profile.
type Trainer struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Expertise     string    `db:"expertise" json:"expertise"`
	Email         string    `db:"email" json:"email"`
	Phone         string    `db:"phone" json:"phone"`
	Bio           string    `db:"bio" json:"bio"`
	ActiveCourses int       `db:"active_courses" json:"active_courses"`
	TotalTrainees int       `db:"total_trainees" json:"total_trainees"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// TrainerPatch carries a shallow-merge update for a trainer.
type TrainerPatch struct {
	Name          *string `json:"name,omitempty"`
	Expertise     *string `json:"expertise,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Bio           *string `json:"bio,omitempty"`
	ActiveCourses *int    `json:"active_courses,omitempty"`
	TotalTrainees *int    `json:"total_trainees,omitempty"`
}
