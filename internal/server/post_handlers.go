package server

import (
	"forum/internal/models"
	"forum/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Content string `json:"content"`
}

type likeResponse struct {
	Result  models.LikeResult `json:"result"`
	Post    *models.Post      `json:"post"`
	Message string            `json:"message,omitempty"`
}

// ListPosts handles GET /api/posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), currentUserID(c), req.Content)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	result, post, err := s.postService.ToggleLike(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return models.Respond(c, err)
	}

	resp := likeResponse{Result: result, Post: post}
	if result == models.LikeResultAlreadyLiked {
		resp.Message = service.AlreadyLikedMessage
	}
	return c.JSON(resp)
}
