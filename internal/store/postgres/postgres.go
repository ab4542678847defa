// Package postgres implements the storage contract on PostgreSQL. It is
// behaviorally indistinguishable from the in-memory backend for every
// contract operation; external identifier suffixes are fed by the BIGSERIAL
// primary key inside the insert transaction, so concurrent creations cannot
// produce colliding identifiers.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/store"
)

// Store is the durable backend.
type Store struct {
	db       *sqlx.DB
	sessions *sessionStore
	now      func() time.Time
}

var _ store.Store = (*Store)(nil)

// New wraps an open database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db, sessions: &sessionStore{db: db}, now: time.Now}
}

// Sessions returns the opaque session-store handle.
func (s *Store) Sessions() store.SessionStore {
	return s.sessions
}

const uniqueViolation = "23505"

func translateErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return store.ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

// inTx runs fn inside a transaction, rolling back on error.
func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// EnsureSchema creates the persisted collections when absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name TEXT NOT NULL,
	role TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS courses (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	duration TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	enrollment_count INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS trainers (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	expertise TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	active_courses INT NOT NULL DEFAULT 0,
	total_trainees INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS trainees (
	id BIGSERIAL PRIMARY KEY,
	trainee_id TEXT NOT NULL DEFAULT '' UNIQUE,
	name TEXT NOT NULL,
	gender TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	contact TEXT NOT NULL DEFAULT '',
	course_id BIGINT NOT NULL,
	course TEXT NOT NULL DEFAULT '',
	trainer_id BIGINT,
	trainer TEXT NOT NULL DEFAULT '',
	enrollment_date TIMESTAMPTZ NOT NULL,
	completion_date TIMESTAMPTZ,
	status TEXT NOT NULL,
	payment TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS payments (
	id BIGSERIAL PRIMARY KEY,
	trainee_id TEXT NOT NULL,
	trainee_name TEXT NOT NULL DEFAULT '',
	course_id BIGINT NOT NULL,
	course TEXT NOT NULL DEFAULT '',
	amount BIGINT NOT NULL,
	receipt_number TEXT NOT NULL DEFAULT '' UNIQUE,
	payment_method TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS assessments (
	id BIGSERIAL PRIMARY KEY,
	trainee_id TEXT NOT NULL,
	trainee_name TEXT NOT NULL DEFAULT '',
	course_id BIGINT NOT NULL,
	course TEXT NOT NULL DEFAULT '',
	assessment_type TEXT NOT NULL DEFAULT '',
	score DOUBLE PRECISION NOT NULL DEFAULT 0,
	max_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	result TEXT NOT NULL,
	feedback TEXT NOT NULL DEFAULT '',
	assessed_by TEXT NOT NULL DEFAULT '',
	assessment_date TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS training_results (
	id BIGSERIAL PRIMARY KEY,
	trainee_id TEXT NOT NULL,
	trainee_name TEXT NOT NULL DEFAULT '',
	course_id BIGINT NOT NULL,
	course TEXT NOT NULL DEFAULT '',
	competencies TEXT NOT NULL DEFAULT '',
	overall_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	certificate_issued BOOLEAN NOT NULL DEFAULT FALSE,
	certificate_number TEXT NOT NULL DEFAULT '',
	issued_date TIMESTAMPTZ,
	remarks TEXT NOT NULL DEFAULT '',
	approved_by TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS refresh_tokens (
	id TEXT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	token TEXT NOT NULL UNIQUE,
	expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	revoked BOOLEAN NOT NULL DEFAULT FALSE,
	revoked_at TIMESTAMPTZ
);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SeedUsers inserts the three fixed role accounts only when the user
// collection is empty, so restarts never duplicate the seed.
func (s *Store) SeedUsers(ctx context.Context) error {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users"); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds := []struct {
		Username string
		Password string
		Name     string
		Role     models.UserRole
	}{
		{"admin", "admin123", "System Administrator", models.RoleAdmin},
		{"officer", "officer123", "Enrollment Officer", models.RoleEnrollmentOfficer},
		{"cashier", "cashier123", "Cashier", models.RoleCashier},
	}
	for _, seed := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := s.CreateUser(ctx, models.User{
			Username:     seed.Username,
			PasswordHash: string(hash),
			Name:         seed.Name,
			Role:         seed.Role,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id); err != nil {
		return nil, translateErr("get user", err)
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE username = $1", username); err != nil {
		return nil, translateErr("get user by username", err)
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	now := s.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	const query = `INSERT INTO users (username, password_hash, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := s.db.GetContext(ctx, &user.ID, query,
		user.Username, user.PasswordHash, user.Name, user.Role, user.CreatedAt, user.UpdatedAt); err != nil {
		return nil, translateErr("create user", err)
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	var user models.User
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1 FOR UPDATE", id); err != nil {
			return translateErr("load user", err)
		}
		store.MergeUser(&user, patch)
		user.UpdatedAt = s.now().UTC()
		const query = `UPDATE users SET name = :name, role = :role, updated_at = :updated_at WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, query, user); err != nil {
			return translateErr("update user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.SelectContext(ctx, &courses, "SELECT * FROM courses ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *Store) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	if err := s.db.GetContext(ctx, &course, "SELECT * FROM courses WHERE id = $1", id); err != nil {
		return nil, translateErr("get course", err)
	}
	return &course, nil
}

func (s *Store) CreateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	now := s.now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	const query = `INSERT INTO courses (name, description, duration, status, enrollment_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := s.db.GetContext(ctx, &course.ID, query,
		course.Name, course.Description, course.Duration, course.Status, course.EnrollmentCount,
		course.CreatedAt, course.UpdatedAt); err != nil {
		return nil, translateErr("create course", err)
	}
	return &course, nil
}

func (s *Store) UpdateCourse(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error) {
	var course models.Course
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &course, "SELECT * FROM courses WHERE id = $1 FOR UPDATE", id); err != nil {
			return translateErr("load course", err)
		}
		store.MergeCourse(&course, patch)
		course.UpdatedAt = s.now().UTC()
		const query = `UPDATE courses SET name = :name, description = :description, duration = :duration,
			status = :status, enrollment_count = :enrollment_count, updated_at = :updated_at WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, query, course); err != nil {
			return translateErr("update course", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *Store) ListTrainers(ctx context.Context) ([]models.Trainer, error) {
	var trainers []models.Trainer
	if err := s.db.SelectContext(ctx, &trainers, "SELECT * FROM trainers ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}
	return trainers, nil
}

func (s *Store) GetTrainer(ctx context.Context, id int64) (*models.Trainer, error) {
	var trainer models.Trainer
	if err := s.db.GetContext(ctx, &trainer, "SELECT * FROM trainers WHERE id = $1", id); err != nil {
		return nil, translateErr("get trainer", err)
	}
	return &trainer, nil
}

func (s *Store) CreateTrainer(ctx context.Context, trainer models.Trainer) (*models.Trainer, error) {
	now := s.now().UTC()
	trainer.CreatedAt = now
	trainer.UpdatedAt = now
	const query = `INSERT INTO trainers (name, expertise, email, phone, bio, active_courses, total_trainees, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := s.db.GetContext(ctx, &trainer.ID, query,
		trainer.Name, trainer.Expertise, trainer.Email, trainer.Phone, trainer.Bio,
		trainer.ActiveCourses, trainer.TotalTrainees, trainer.CreatedAt, trainer.UpdatedAt); err != nil {
		return nil, translateErr("create trainer", err)
	}
	return &trainer, nil
}

func (s *Store) UpdateTrainer(ctx context.Context, id int64, patch models.TrainerPatch) (*models.Trainer, error) {
	var trainer models.Trainer
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &trainer, "SELECT * FROM trainers WHERE id = $1 FOR UPDATE", id); err != nil {
			return translateErr("load trainer", err)
		}
		store.MergeTrainer(&trainer, patch)
		trainer.UpdatedAt = s.now().UTC()
		const query = `UPDATE trainers SET name = :name, expertise = :expertise, email = :email, phone = :phone,
			bio = :bio, active_courses = :active_courses, total_trainees = :total_trainees, updated_at = :updated_at
			WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, query, trainer); err != nil {
			return translateErr("update trainer", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}
