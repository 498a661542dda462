package server

import (
	"tapestry/internal/models"
	"tapestry/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpsertMyProfile handles PUT /api/users/me
func (s *Server) UpsertMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Bio      string `json:"bio"`
		Image    string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpsertProfile(c.UserContext(), service.UpsertProfileInput{
		UserID:   userID,
		Username: req.Username,
		Name:     req.Name,
		Bio:      req.Bio,
		Image:    req.Image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// GetMyProfile handles GET /api/users/me. A 404 here tells the onboarding
// flow the caller has no profile yet.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.FetchProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id, where :id is the external id.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	user, err := s.userService.FetchProfile(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetAllUsers handles GET /api/users?search=&page=&page_size=&sort=
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	page := parsePage(c, 20)

	users, hasNext, err := s.userService.ListUsers(c.UserContext(), service.ListUsersInput{
		RequestingUserID: currentUserID(c),
		Search:           c.Query("search"),
		Page:             page.Number,
		PageSize:         page.Size,
		SortDirection:    c.Query("sort"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":    users,
		"has_next": hasNext,
	})
}
