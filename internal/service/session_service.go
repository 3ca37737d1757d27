package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/internal/repository"
	appErrors "github.com/educafacil/educafacil-api/pkg/errors"
	"github.com/educafacil/educafacil-api/pkg/kvstore"
)

// SessionService resolves and maintains the single active user identity of
// the application instance. Only the user id is held; the user itself is
// re-derived from the repository on every read so that administrator actions
// (approve, suspend) are visible without re-login.
type SessionService struct {
	repo      *repository.Repository
	store     kvstore.Store
	validator *validator.Validate
	logger    *zap.Logger

	mu        sync.RWMutex
	currentID string
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo *repository.Repository, store kvstore.Store, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, store: store, validator: validate, logger: logger}
}

// Login matches the email against the users collection, case-sensitive and
// exact. On a match the session is established and persisted; the boolean
// reports success. No password or status check happens here: a PENDING
// teacher logs in and is gated afterwards.
func (s *SessionService) Login(ctx context.Context, email string) (*models.User, bool) {
	user := s.repo.UserByEmail(email)
	if user == nil {
		return nil, false
	}

	s.mu.Lock()
	s.currentID = user.ID
	s.mu.Unlock()

	s.persistSession(ctx, user.ID)
	s.logger.Info("login", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, true
}

// Register creates the account. Teachers start PENDING and get no session;
// students are logged in immediately. Duplicate emails are rejected here,
// the repository itself stays permissive.
func (s *SessionService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}
	if existing := s.repo.UserByEmail(req.Email); existing != nil {
		return nil, appErrors.Clone(appErrors.ErrEmailTaken, "")
	}

	user := models.User{
		ID:     uuid.NewString(),
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Status: models.InitialStatus(req.Role),
	}
	switch req.Role {
	case models.RoleStudent:
		user.Student = &models.StudentProfile{Grade: req.Grade, LearningStyle: req.LearningStyle}
	case models.RoleTeacher:
		user.Teacher = &models.TeacherProfile{Grades: req.Grades, Subjects: req.Subjects}
	}

	s.repo.AddUser(ctx, user)

	if user.Role == models.RoleStudent {
		s.mu.Lock()
		s.currentID = user.ID
		s.mu.Unlock()
		s.persistSession(ctx, user.ID)
	}

	s.logger.Info("registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)), zap.String("status", string(user.Status)))
	return &user, nil
}

// Logout clears the active identity and removes the persisted session key.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.currentID = ""
	s.mu.Unlock()

	if err := s.store.Delete(ctx, kvstore.KeySession); err != nil {
		s.logger.Warn("failed to clear persisted session", zap.Error(err))
	}
}

// Restore re-establishes the session persisted by a previous run. It must be
// called only after the repository has finished hydrating, otherwise the
// lookup would run against the default seed and spuriously fail. A stale id
// silently leaves the session logged out.
func (s *SessionService) Restore(ctx context.Context) {
	data, err := s.store.Load(ctx, kvstore.KeySession)
	if err != nil {
		if err != kvstore.ErrKeyNotFound {
			s.logger.Warn("session key unreadable", zap.Error(err))
		}
		return
	}

	id := string(data)
	if s.repo.UserByID(id) == nil {
		s.logger.Info("persisted session is stale, staying logged out", zap.String("user_id", id))
		return
	}

	s.mu.Lock()
	s.currentID = id
	s.mu.Unlock()
	s.logger.Info("session restored", zap.String("user_id", id))
}

// Current returns the active user, freshly looked up from the repository, or
// nil when nobody is logged in.
func (s *SessionService) Current() *models.User {
	s.mu.RLock()
	id := s.currentID
	s.mu.RUnlock()

	if id == "" {
		return nil
	}
	return s.repo.UserByID(id)
}

func (s *SessionService) persistSession(ctx context.Context, id string) {
	if err := s.store.Save(ctx, kvstore.KeySession, []byte(id)); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
}
