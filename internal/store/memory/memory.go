// Package memory implements the storage contract with in-process maps. It is
// the reference implementation for contract behaviour: non-durable, suitable
// for a single-process deployment, and seeded with one user per role so the
// system is usable without a registration step.
package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/store"
)

// Store holds one identity map per entity type plus monotonic counters. A
// single RWMutex serializes all mutation; counters never move backwards and
// identities are never reused.
type Store struct {
	mu sync.RWMutex

	users           map[int64]*models.User
	courses         map[int64]*models.Course
	trainers        map[int64]*models.Trainer
	trainees        map[int64]*models.Trainee
	payments        map[int64]*models.Payment
	assessments     map[int64]*models.Assessment
	trainingResults map[int64]*models.TrainingResult

	userSeq           int64
	courseSeq         int64
	trainerSeq        int64
	traineeSeq        int64
	paymentSeq        int64
	assessmentSeq     int64
	trainingResultSeq int64

	sessions *sessionStore

	now func() time.Time
}

var _ store.Store = (*Store)(nil)

// Seed accounts created at construction, one per role.
var seedUsers = []struct {
	Username string
	Password string
	Name     string
	Role     models.UserRole
}{
	{"admin", "admin123", "System Administrator", models.RoleAdmin},
	{"officer", "officer123", "Enrollment Officer", models.RoleEnrollmentOfficer},
	{"cashier", "cashier123", "Cashier", models.RoleCashier},
}

// New constructs a seeded in-memory store.
func New() (*Store, error) {
	s := &Store{
		users:           make(map[int64]*models.User),
		courses:         make(map[int64]*models.Course),
		trainers:        make(map[int64]*models.Trainer),
		trainees:        make(map[int64]*models.Trainee),
		payments:        make(map[int64]*models.Payment),
		assessments:     make(map[int64]*models.Assessment),
		trainingResults: make(map[int64]*models.TrainingResult),
		sessions:        newSessionStore(),
		now:             time.Now,
	}

	for _, seed := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		if _, err := s.CreateUser(context.Background(), models.User{
			Username:     seed.Username,
			PasswordHash: string(hash),
			Name:         seed.Name,
			Role:         seed.Role,
		}); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Sessions returns the opaque session-store handle.
func (s *Store) Sessions() store.SessionStore {
	return s.sessions
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	sortByID(users, func(u models.User) int64 { return u.ID })
	return users, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Case-sensitive exact match per the login contract.
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return nil, store.ErrConflict
		}
	}

	s.userSeq++
	user.ID = s.userSeq
	now := s.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := user
	s.users[user.ID] = &cp
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	store.MergeUser(u, patch)
	u.UpdatedAt = s.now().UTC()
	cp := *u
	return &cp, nil
}

func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		courses = append(courses, *c)
	}
	sortByID(courses, func(c models.Course) int64 { return c.ID })
	return courses, nil
}

func (s *Store) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *Store) CreateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.courseSeq++
	course.ID = s.courseSeq
	now := s.now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	cp := course
	s.courses[course.ID] = &cp
	return &course, nil
}

func (s *Store) UpdateCourse(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.courses[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	store.MergeCourse(c, patch)
	c.UpdatedAt = s.now().UTC()
	cp := *c
	return &cp, nil
}

func (s *Store) ListTrainers(ctx context.Context) ([]models.Trainer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trainers := make([]models.Trainer, 0, len(s.trainers))
	for _, t := range s.trainers {
		trainers = append(trainers, *t)
	}
	sortByID(trainers, func(t models.Trainer) int64 { return t.ID })
	return trainers, nil
}

func (s *Store) GetTrainer(ctx context.Context, id int64) (*models.Trainer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trainers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *Store) CreateTrainer(ctx context.Context, trainer models.Trainer) (*models.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trainerSeq++
	trainer.ID = s.trainerSeq
	now := s.now().UTC()
	trainer.CreatedAt = now
	trainer.UpdatedAt = now
	cp := trainer
	s.trainers[trainer.ID] = &cp
	return &trainer, nil
}

func (s *Store) UpdateTrainer(ctx context.Context, id int64, patch models.TrainerPatch) (*models.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trainers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	store.MergeTrainer(t, patch)
	t.UpdatedAt = s.now().UTC()
	cp := *t
	return &cp, nil
}
