package service

import (
	"context"
	"log/slog"

	"forum/internal/middleware"
	"forum/internal/models"
	"forum/internal/observability"
	"forum/internal/repository"
	"forum/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// AlreadyLikedMessage is shown when a user likes the same post twice.
const AlreadyLikedMessage = "You can only like a post once!"

type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts returns every post, oldest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) CreatePost(ctx context.Context, userID uint, content string) (*models.Post, error) {
	content, err := validation.NormalizePostContent(content)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	author := userID
	post := &models.Post{
		Content: content,
		UserID:  &author,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.PostsCreated.Inc()
	return post, nil
}

// ToggleLike records a like by userID on postID. A repeated like is reported
// as already liked and changes nothing; it never removes a like.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (result models.LikeResult, post *models.Post, err error) {
	ctx, end := observability.StartSpan(ctx, "post.like",
		attribute.Int64("user.id", int64(userID)),
		attribute.Int64("post.id", int64(postID)),
	)
	defer func() { end(err) }()

	result, post, err = s.postRepo.Like(ctx, userID, postID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			observability.LikeRequests.WithLabelValues("not_found").Inc()
		} else {
			observability.LikeRequests.WithLabelValues("error").Inc()
		}
		return "", nil, err
	}

	observability.LikeRequests.WithLabelValues(string(result)).Inc()
	middleware.Logger.DebugContext(ctx, "Like processed",
		slog.Uint64("post_id", uint64(postID)),
		slog.String("result", string(result)),
	)
	return result, post, nil
}
