package server

import (
	"chirp/internal/cache"
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		AuthorID uint   `json:"author_id"`
		Content  string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.AuthorID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("author_id is required"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorID: req.AuthorID,
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// ToggleLike handles POST /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		AuthorID uint `json:"author_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.AuthorID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("author_id is required"))
	}

	liked, err := s.postService.ToggleLike(ctx, req.AuthorID, postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"liked": liked})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var post *models.Post
	if found, err := cache.GetJSON(ctx, cache.PostKey(id), &post); err == nil && found {
		return c.JSON(post)
	}

	post, err = s.postRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if post == nil {
		// Misses are not cached.
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("post", id))
	}

	_ = cache.SetJSON(ctx, cache.PostKey(id), post, cache.PostTTL)
	return c.JSON(post)
}
