package middleware

import (
	"decourse/config"
	services "decourse/services/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// CourseAvailabilityGate blocks course routes while the platform is not yet
// available, unless one of the configured overrides matches. On denial the
// response is a 503 with a fixed error body; on allowance the request
// proceeds untouched.
func CourseAvailabilityGate(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)
	email, _ := c.Locals("userEmail").(string)

	previewToken := c.Query("preview")
	if previewToken == "" {
		previewToken = c.Cookies("preview_token")
	}

	decision, err := services.CheckCourseAccess(config.AppConfig, userID, email, previewToken)
	if err != nil {
		log.Printf("[AVAILABILITY] Gate check failed: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Course is not yet available",
		})
	}

	if !decision.Allowed {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Course is not yet available",
		})
	}

	if decision.Reason != "course available" {
		log.Printf("[AVAILABILITY] User %d allowed through gate: %s", userID, decision.Reason)
	}
	return c.Next()
}
