package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/devnice/usuarios-api/internal/auth"
	"github.com/devnice/usuarios-api/internal/domain"
	"github.com/devnice/usuarios-api/internal/events"
	"github.com/devnice/usuarios-api/internal/repository"
	apperrors "github.com/devnice/usuarios-api/pkg/util/errorutil"
)

// CreateUserInput carries a new user's fields.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// UpdateUserInput carries the full replacement of a user. An empty Password keeps the
// stored hash.
type UpdateUserInput struct {
	ID       int64
	Version  int
	Name     string
	Email    string
	Password string
	Phone    string
}

// UserService coordinates user management and login.
type UserService struct {
	users      repository.UserRepository
	encoder    *auth.PasswordEncoder
	tokens     *auth.TokenAuthority
	dispatcher events.Dispatcher
	logger     *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// UserDependencies encapsulates requirements for the user service.
type UserDependencies struct {
	Users      repository.UserRepository
	Encoder    *auth.PasswordEncoder
	Tokens     *auth.TokenAuthority
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.Users,
		encoder:    deps.Encoder,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// List returns every user ordered by id.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return users, nil
}

// Create registers a user with a hashed password.
func (s *UserService) Create(ctx context.Context, actor string, in CreateUserInput) (*domain.User, error) {
	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapRepositoryError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventUserCreated, user.ID, actor, changedPayload(user)))
	return user, nil
}

// Update replaces a user's fields, re-hashing the password when one is supplied.
func (s *UserService) Update(ctx context.Context, actor string, in UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, in.ID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	user.Version = in.Version
	user.Name = in.Name
	user.Email = in.Email
	user.Phone = in.Phone
	if in.Password != "" {
		hash, err := s.hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapRepositoryError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventUserUpdated, user.ID, actor, changedPayload(user)))
	return user, nil
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, actor string, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventUserDeleted, id, actor, nil))
	return nil
}

// Login verifies the password of the user registered under email and issues a token
// for the user's name.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, auth.IssuedToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		// keep the response time of unknown emails close to that of wrong passwords
		s.encoder.Matches(password, s.dummyDigest())
		return nil, auth.IssuedToken{}, errInvalidCredentials()
	}
	if err != nil {
		return nil, auth.IssuedToken{}, mapRepositoryError(err)
	}

	if !s.encoder.Matches(password, user.PasswordHash) {
		return nil, auth.IssuedToken{}, errInvalidCredentials()
	}

	token, err := s.tokens.Issue(user.Name)
	if err != nil {
		return nil, auth.IssuedToken{}, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventUserLoggedIn, user.ID, user.Name, nil))
	return user, token, nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := s.encoder.Hash(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.NewValidationError("validation failed", map[string]any{"senha": "must be at most 72 bytes"})
	}
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}

func (s *UserService) dummyDigest() string {
	s.dummyOnce.Do(func() {
		hash, err := s.encoder.Hash("not-a-real-password")
		if err != nil {
			s.logger.Warn("unable to prepare dummy password hash", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("user_id", event.UserID),
			zap.Error(err))
	}
}

func changedPayload(user *domain.User) events.UserChangedPayload {
	return events.UserChangedPayload{Name: user.Name, Email: user.Email, Version: user.Version}
}

func errInvalidCredentials() error {
	return apperrors.NewForbidden("invalid credentials")
}

func mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return apperrors.NewNotFound("user", err)
	case errors.Is(err, repository.ErrDuplicateUser):
		return apperrors.NewConflict("user name or email already registered", err)
	case errors.Is(err, repository.ErrVersionConflict):
		return apperrors.NewConflict("user was modified by another request", err)
	default:
		return apperrors.NewInternalError(err)
	}
}
