package controllers

import (
	"decourse/middleware"
	services "decourse/services/course"

	"github.com/gofiber/fiber/v2"
)

// CreateAccessCode creates a new temporary access code (admin)
func CreateAccessCode(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateCode").(*struct {
		ExpiresInDays int `json:"expires_in_days" validate:"gte=-1,lte=365"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	code, err := services.CreateTemporaryAccessCode(reqData.ExpiresInDays)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create access code!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Access code created successfully!", code)
}

// CleanupExpiredAccess runs the expiry sweep on demand (admin)
func CleanupExpiredAccess(c *fiber.Ctx) error {
	result, err := services.CleanupExpiredTemporaryAccess()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Cleanup sweep failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cleanup sweep completed!", result)
}

// SetCourseAvailability flips the global availability flag (admin)
func SetCourseAvailability(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAvailability").(*struct {
		IsAvailable *bool `json:"is_available" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if err := services.SetCourseAvailability(*reqData.IsAvailable); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update availability!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course availability updated!", fiber.Map{
		"is_available": *reqData.IsAvailable,
	})
}
