package server

import (
	"errors"

	"tapestry/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Page holds parsed 1-based page/page_size query parameters.
type Page struct {
	Number int
	Size   int
}

const maxPageSize = 100

// parsePage extracts page and page_size query parameters with the given
// default size. Non-positive values are passed through so the service layer
// rejects them uniformly.
func parsePage(c *fiber.Ctx, defaultSize int) Page {
	number := c.QueryInt("page", 1)
	size := c.QueryInt("page_size", defaultSize)
	if size > maxPageSize {
		size = maxPageSize
	}
	return Page{Number: number, Size: size}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid thread ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID returns the external user id asserted by the identity
// middleware. Routes behind IdentityRequired always have it.
func currentUserID(c *fiber.Ctx) string {
	if uid, ok := c.Locals("userID").(string); ok {
		return uid
	}
	return ""
}

// respondServiceError writes the JSON error envelope with the status derived
// from the application error code.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}
