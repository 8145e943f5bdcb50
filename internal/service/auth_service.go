package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bizdash/internal/auth"
	apperrors "bizdash/internal/errors"
	"bizdash/internal/model"
	"bizdash/internal/repository"
)

const bcryptCost = 10

// AuthService verifies credentials and issues session tokens.
type AuthService interface {
	// Login checks the email/password pair and returns the matched user with
	// a freshly signed session token. Unknown email and wrong password both
	// fail with apperrors.ErrInvalidCredentials; persistence failures
	// propagate as distinct internal errors.
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}

	return user, token, nil
}
