package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Authenticate(ctx context.Context, username, password string) (*User, error)
	CreateUser(ctx context.Context, username, name, role, password string) (*User, error)
	GetUser(ctx context.Context, userID int64) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

var _ UserService = (*userService)(nil)

type userService struct {
	repo   UserRepository
	logger *slog.Logger
}

func NewUserService(repo UserRepository, logger *slog.Logger) UserService {
	if repo == nil {
		panic("user repository cannot be nil")
	}
	return &userService{
		repo:   repo,
		logger: logger.With(slog.String("component", "userService")),
	}
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	s.logger.InfoContext(ctx, "Attempting to authenticate user", slog.String("username", username))

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Authentication failed: unknown username")
			return nil, ErrBadCredentials
		}
		s.logger.ErrorContext(ctx, "Repository error finding user", slog.Any("error", err))
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "Authentication failed: password mismatch", slog.String("username", username))
		return nil, ErrBadCredentials
	}

	s.logger.InfoContext(ctx, "User authenticated", slog.Int64("userID", u.ID))
	return u, nil
}

func (s *userService) CreateUser(ctx context.Context, username, name, role, password string) (*User, error) {
	s.logger.InfoContext(ctx, "Attempting to create new user")

	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}
	if role != RoleAdmin && role != RoleUser {
		role = RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Username:     username,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.repo.Save(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			s.logger.WarnContext(ctx, "Duplicate username conflict detected during save", slog.String("username", username))
			return nil, ErrDuplicateUsername
		}
		s.logger.ErrorContext(ctx, "Repository failed to save new user", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new user: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully created new user", slog.Int64("userID", u.ID))
	return u, nil
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding user", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return u, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing users", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error deleting user", slog.Any("error", err))
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}
	s.logger.InfoContext(ctx, "Successfully deleted user", slog.Int64("userID", userID))
	return nil
}
