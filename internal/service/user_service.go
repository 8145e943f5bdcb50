package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bizdash/internal/cache"
	apperrors "bizdash/internal/errors"
	"bizdash/internal/model"
	"bizdash/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// CreateUserInput carries the fields needed to create a user. Password is
// plaintext here and hashed before it reaches the repository.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// UpdateUserInput carries a partial update. Empty fields are left unchanged;
// a non-empty Password is re-hashed.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// UserService exposes user management operations.
type UserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if err := s.checkUnique(ctx, in.Email, in.Username, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if in.Email != "" && in.Email != user.Email {
		if err := s.checkUnique(ctx, in.Email, "", id); err != nil {
			return nil, err
		}
		user.Email = in.Email
	}
	if in.Username != "" && in.Username != user.Username {
		if err := s.checkUnique(ctx, "", in.Username, id); err != nil {
			return nil, err
		}
		user.Username = in.Username
	}
	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// checkUnique verifies that email and username (when non-empty) are not
// already taken by another user.
func (s *userService) checkUnique(ctx context.Context, email, username string, selfID uint) error {
	if email != "" {
		existing, err := s.repo.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check email uniqueness: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return apperrors.ErrEmailTaken
		}
	}
	if username != "" {
		existing, err := s.repo.FindByUsername(ctx, username)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check username uniqueness: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return apperrors.ErrUsernameTaken
		}
	}
	return nil
}
