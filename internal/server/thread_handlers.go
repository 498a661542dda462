package server

import (
	"tapestry/internal/models"
	"tapestry/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateThread handles POST /api/threads
func (s *Server) CreateThread(c *fiber.Ctx) error {
	var req struct {
		Text        string `json:"text"`
		CommunityID string `json:"community_id,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	thread, err := s.threadService.CreateThread(c.UserContext(), service.CreateThreadInput{
		Text:        req.Text,
		AuthorID:    currentUserID(c),
		CommunityID: req.CommunityID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(thread)
}

// AddReply handles POST /api/threads/:id/replies
func (s *Server) AddReply(c *fiber.Ctx) error {
	parentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reply, err := s.threadService.AddReply(c.UserContext(), service.AddReplyInput{
		ParentID: parentID,
		Text:     req.Text,
		AuthorID: currentUserID(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(reply)
}

// GetFeed handles GET /api/threads?page=&page_size=
func (s *Server) GetFeed(c *fiber.Ctx) error {
	page := parsePage(c, 20)

	posts, hasNext, err := s.threadService.FetchFeed(c.UserContext(), page.Number, page.Size)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":    posts,
		"has_next": hasNext,
	})
}

// GetThread handles GET /api/threads/:id?depth=
func (s *Server) GetThread(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	depth := c.QueryInt("depth", 0)
	thread, svcErr := s.threadService.ExpandThread(c.UserContext(), id, depth)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(thread)
}

// GetActivity handles GET /api/activity
func (s *Server) GetActivity(c *fiber.Ctx) error {
	replies, err := s.threadService.FetchActivity(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"activity": replies,
	})
}
