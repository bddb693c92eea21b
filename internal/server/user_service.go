package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/studygram/internal/config"
	"github.com/jonathan/studygram/internal/study"
	"github.com/jonathan/studygram/internal/types"
)

// UserService registers and authenticates accounts
type UserService struct {
	store          study.UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store study.UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

func toUser(rec *study.UserRecord) *types.User {
	return &types.User{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		CreatedAt: rec.CreatedAt,
	}
}

// Register creates a new user with a bcrypt-hashed password
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	hash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rec := &study.UserRecord{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, rec); err != nil {
		if errors.Is(err, study.ErrEmailExists) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return toUser(rec), nil
}

// Login authenticates a user. Unknown email and wrong password are indistinguishable.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	rec, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, study.ErrNotFound) {
			return nil, &ErrInvalidCredentials{}
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !s.passwordConfig.VerifyPassword(req.Password, rec.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return toUser(rec), nil
}

// Me returns the profile of an authenticated user
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	rec, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUser(rec), nil
}
