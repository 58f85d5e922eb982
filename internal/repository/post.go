package repository

import (
	"context"
	"errors"

	"forum/internal/database"
	"forum/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts and likes.
type PostRepository interface {
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Like(ctx context.Context, userID, postID uint) (models.LikeResult, *models.Post, error)
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// List returns every post in insertion order. It always reads the table so
// like counts match the committed Like rows.
func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	post.Likes = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		if isForeignKeyViolation(err) && post.UserID != nil {
			return models.NewNotFoundError("User", *post.UserID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

var errLikeRaced = errors.New("like inserted concurrently")

// Like records that userID likes postID. The post row is locked, the like is
// inserted with ON CONFLICT DO NOTHING and the counter is bumped only when a
// row was actually inserted, all in one transaction.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) (models.LikeResult, *models.Post, error) {
	var post models.Post
	result := models.LikeResultAlreadyLiked

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if !database.IsSQLite(tx) {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewInternalError(err)
		}

		like := models.Like{UserID: userID, PostID: postID}
		res := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&like)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return errLikeRaced
			}
			if isForeignKeyViolation(res.Error) {
				return models.NewNotFoundError("User", userID)
			}
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error; err != nil {
			return models.NewInternalError(err)
		}
		post.Likes++
		result = models.LikeResultLiked
		return nil
	})

	switch {
	case errors.Is(err, errLikeRaced):
		return models.LikeResultAlreadyLiked, &post, nil
	case err != nil:
		return "", nil, err
	}
	return result, &post, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
