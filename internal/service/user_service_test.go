package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "bizdash/internal/errors"
	"bizdash/internal/model"
)

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name          string
		input         CreateUserInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful creation",
			input: CreateUserInput{Username: "jane", Email: "jane@example.com", Password: "password123", FullName: "Jane Doe"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", mock.Anything, "jane").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:  "email already taken",
			input: CreateUserInput{Username: "jane", Email: "taken@example.com", Password: "password123", FullName: "Jane Doe"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{ID: 9, Email: "taken@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:  "username already taken",
			input: CreateUserInput{Username: "taken", Email: "jane@example.com", Password: "password123", FullName: "Jane Doe"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", mock.Anything, "taken").Return(&model.User{ID: 9, Username: "taken"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			user, err := svc.CreateUser(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.Equal(t, tt.input.Username, user.Username)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.input.Password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		_, err := svc.UpdateUser(context.Background(), 5, UpdateUserInput{FullName: "New Name"})
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("password change is re-hashed", func(t *testing.T) {
		oldHash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcryptCost)
		existing := &model.User{ID: 5, Username: "jane", Email: "jane@example.com", PasswordHash: string(oldHash)}

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(mockRepo, nil)
		user, err := svc.UpdateUser(context.Background(), 5, UpdateUserInput{Password: "new-password"})
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("unchanged fields keep their values", func(t *testing.T) {
		existing := &model.User{ID: 5, Username: "jane", Email: "jane@example.com", FullName: "Jane Doe"}

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(mockRepo, nil)
		user, err := svc.UpdateUser(context.Background(), 5, UpdateUserInput{FullName: "Jane Smith"})
		require.NoError(t, err)
		assert.Equal(t, "jane", user.Username)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, "Jane Smith", user.FullName)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Delete", mock.Anything, uint(7)).Return(gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		err := svc.DeleteUser(context.Background(), 7)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Delete", mock.Anything, uint(7)).Return(nil)

		svc := NewUserService(mockRepo, nil)
		assert.NoError(t, svc.DeleteUser(context.Background(), 7))
	})
}

func TestUserService_GetUser(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		_, err := svc.GetUser(context.Background(), 2)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Username: "jane"}, nil)

		svc := NewUserService(mockRepo, nil)
		user, err := svc.GetUser(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "jane", user.Username)
	})
}
