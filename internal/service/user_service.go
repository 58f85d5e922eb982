// Package service holds the forum's business operations on top of the repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"forum/internal/models"
	"forum/internal/repository"
	"forum/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

type CreateUserInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput carries optional replacements. Nil fields are unchanged.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
}

type UpdateProfileInput = UpdateUserInput

func NewUserService(userRepo repository.UserRepository, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{userRepo: userRepo, bcryptCost: bcryptCost}
}

// CreateUser stores a new account with a bcrypt hash of the password.
// Uniqueness is left to the database; a duplicate yields CONFLICT.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := validation.NormalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, models.NewValidationError("Username, email and password are required")
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail returns nil, nil when no account uses the email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(email))
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser validates and applies every provided field in one transaction.
// A conflict on any field leaves the account untouched.
func (s *UserService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	changes := repository.UserChanges{}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		changes.Username = &username
	}
	if in.Email != nil {
		email := validation.NormalizeEmail(*in.Email)
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		changes.Email = &email
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hash, err := s.hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}
	return s.userRepo.Update(ctx, id, changes)
}

// UpdateProfile is the self-service form of UpdateUser. Profile forms send
// every field, so a blank password keeps the current one.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	if in.Password != nil && *in.Password == "" {
		in.Password = nil
	}
	return s.UpdateUser(ctx, userID, in)
}

// CheckPassword reports whether password matches the user's stored hash.
func (s *UserService) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// CountUsers is used by startup seeding.
func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", models.NewValidationError(err.Error())
		}
		return "", models.NewInternalError(fmt.Errorf("hash password: %w", err))
	}
	return string(hash), nil
}
