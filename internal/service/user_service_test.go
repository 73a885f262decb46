package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "blizzint/internal/errors"
	"blizzint/internal/model"
)

func TestUserService_CreateUser(t *testing.T) {
	t.Run("duplicate email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)

		svc := NewUserService(mockRepo)
		user, err := svc.CreateUser(context.Background(), "Someone", "taken@example.com", "password123", "")

		assert.Nil(t, user)
		assert.Equal(t, apperrors.ErrEmailTaken, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("role defaults to user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(mockRepo)
		user, err := svc.CreateUser(context.Background(), "New User", "new@example.com", "password123", "")

		assert.NoError(t, err)
		assert.Equal(t, model.RoleUser, user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	})

	t.Run("explicit admin role", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "boss@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(mockRepo)
		user, err := svc.CreateUser(context.Background(), "Boss", "boss@example.com", "password123", model.RoleAdmin)

		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	originalHash, _ := bcrypt.GenerateFromPassword([]byte("original-password"), 10)

	existing := func() *model.User {
		return &model.User{
			ID:           3,
			Name:         "Old Name",
			Email:        "old@example.com",
			PasswordHash: string(originalHash),
			Role:         model.RoleUser,
		}
	}

	t.Run("without password keeps stored hash", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(mockRepo)
		user, err := svc.UpdateUser(context.Background(), 3, UpdateUserParams{
			Name:  "New Name",
			Email: "new@example.com",
			Role:  model.RoleAdmin,
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", user.Name)
		assert.Equal(t, string(originalHash), user.PasswordHash)
		// the original password still verifies
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("original-password")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("with password re-hashes", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(mockRepo)
		user, err := svc.UpdateUser(context.Background(), 3, UpdateUserParams{
			Name:     "New Name",
			Email:    "new@example.com",
			Role:     model.RoleUser,
			Password: "fresh-password",
		})

		assert.NoError(t, err)
		assert.NotEqual(t, string(originalHash), user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("fresh-password")))
	})

	t.Run("missing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo)
		user, err := svc.UpdateUser(context.Background(), 99, UpdateUserParams{})

		assert.Nil(t, user)
		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Delete", mock.Anything, uint(4)).Return(int64(1), nil)

		svc := NewUserService(mockRepo)
		assert.NoError(t, svc.DeleteUser(context.Background(), 4))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Delete", mock.Anything, uint(99)).Return(int64(0), nil)

		svc := NewUserService(mockRepo)
		assert.Equal(t, apperrors.ErrUserNotFound, svc.DeleteUser(context.Background(), 99))
	})
}

func TestUserService_ListUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return([]model.User{
		{ID: 2, Email: "newer@example.com"},
		{ID: 1, Email: "older@example.com"},
	}, nil)

	svc := NewUserService(mockRepo)
	users, err := svc.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	mockRepo.AssertExpectations(t)
}
