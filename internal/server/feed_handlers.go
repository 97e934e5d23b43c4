package server

import (
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAuthorFeed handles GET /api/users/:user/posts
// The :user segment accepts a numeric id or a handle.
func (s *Server) GetAuthorFeed(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user := c.Params("user")
	if user == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user is required"))
	}

	paging := parsePaging(c, service.DefaultPageSize)

	posts, err := s.feedService.FeedByAuthor(ctx, user, paging.Page, paging.PageSize)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}

// GetTimeline handles GET /api/timeline?authors=1,2,3
func (s *Server) GetTimeline(c *fiber.Ctx) error {
	ctx := c.UserContext()

	authorIDs, err := parseAuthorIDs(c.Query("authors"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	paging := parsePaging(c, service.DefaultPageSize)

	posts, err := s.feedService.Timeline(ctx, authorIDs, paging.Page, paging.PageSize)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}
