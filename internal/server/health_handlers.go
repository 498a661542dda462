package server

import (
	"github.com/gofiber/fiber/v2"
)

// LivenessCheck handles GET /health/live. It answers as long as the process
// is serving requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck handles GET /health/ready. It verifies the persistent store
// is reachable before reporting ready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	if s.db == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"reason": "database not configured",
		})
	}

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"reason": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"status": "ready"})
}
