package service

import (
	"context"
	"errors"
	"testing"

	"forum/internal/models"
	"forum/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	createFn     func(ctx context.Context, user *models.User) error
	updateFn     func(ctx context.Context, id uint, changes repository.UserChanges) (*models.User, error)
	countFn      func(ctx context.Context) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *userRepoStub) Update(ctx context.Context, id uint, changes repository.UserChanges) (*models.User, error) {
	return s.updateFn(ctx, id, changes)
}

func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateFn: func(_ context.Context, id uint, _ repository.UserChanges) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		countFn: func(_ context.Context) (int64, error) { return 0, nil },
	}
}

type postRepoStub struct {
	listFn    func(ctx context.Context) ([]*models.Post, error)
	getByIDFn func(ctx context.Context, id uint) (*models.Post, error)
	createFn  func(ctx context.Context, post *models.Post) error
	likeFn    func(ctx context.Context, userID, postID uint) (models.LikeResult, *models.Post, error)
	countFn   func(ctx context.Context) (int64, error)
}

func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}

func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) (models.LikeResult, *models.Post, error) {
	return s.likeFn(ctx, userID, postID)
}

func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listFn:    func(_ context.Context) ([]*models.Post, error) { return []*models.Post{}, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		likeFn: func(_ context.Context, _, postID uint) (models.LikeResult, *models.Post, error) {
			return models.LikeResultLiked, &models.Post{ID: postID, Likes: 1}, nil
		},
		countFn: func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// assertCode asserts that err is an AppError with the given code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeValidation)
}

func strPtr(s string) *string { return &s }
