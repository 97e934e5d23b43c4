package server

import (
	"errors"
	"strconv"
	"strings"

	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Paging holds parsed page/page_size query parameters.
type Paging struct {
	Page     int
	PageSize int
}

// parsePaging extracts page and page_size query parameters with the given default size.
func parsePaging(c *fiber.Ctx, defaultSize int) Paging {
	page := c.QueryInt("page", 0)
	if page < 0 {
		page = 0
	}

	size := c.QueryInt("page_size", defaultSize)
	if size <= 0 {
		size = defaultSize
	}

	return Paging{Page: page, PageSize: size}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseAuthorIDs parses a comma-separated list of author ids from the query string.
func parseAuthorIDs(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("authors parameter is required")
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil || id == 0 {
			return nil, errors.New("authors must be positive integers")
		}
		ids = append(ids, uint(id))
	}
	if len(ids) == 0 {
		return nil, errors.New("authors parameter is required")
	}
	return ids, nil
}

// statusForError maps an AppError code to an HTTP status.
func statusForError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}
