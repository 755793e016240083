package controllers

import (
	"decourse/database"
	"decourse/middleware"
	"decourse/models"
	courseModels "decourse/models/course"
	services "decourse/services/course"

	"github.com/gofiber/fiber/v2"
)

// MarkLessonComplete records a lesson completion for the current user
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedLessonComplete").(*struct {
		LessonPath       string `json:"lesson_path" validate:"required,startswith=/"`
		TimeSpentSeconds int64  `json:"time_spent_seconds" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	// The lesson must be viewable under the user's effective access level
	accessLevel, err := services.ResolveAccessLevel(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve access level!", nil)
	}
	if !services.CanViewLesson(accessLevel, reqData.LessonPath) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This lesson is not included in your plan!", nil)
	}

	progress, err := services.MarkLessonComplete(userID, reqData.LessonPath, reqData.TimeSpentSeconds)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record lesson completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completion recorded!", progress)
}

// GetTrackProgress returns completion state for one track/platform pair
func GetTrackProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	track := c.Locals("track").(string)
	platform := c.Locals("platform").(string)

	completion, err := services.GetTrackCompletionStatus(userID, track, platform)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"track":      track,
		"platform":   platform,
		"completion": completion,
	})
}

// GetCourseOverview returns completion state for every track/platform pair
func GetCourseOverview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	overview, err := services.GetCourseOverview(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course overview!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course overview fetched successfully!", fiber.Map{
		"tracks": overview,
	})
}

// GetLessonAccess reports whether the current user may view a lesson path
func GetLessonAccess(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonPath := c.Locals("lessonPath").(string)

	accessLevel, err := services.ResolveAccessLevel(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve access level!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson access resolved!", fiber.Map{
		"lesson_path":  lessonPath,
		"access_level": accessLevel,
		"can_view":     services.CanViewLesson(accessLevel, lessonPath),
		"is_free":      contains(courseModels.FreeLessons(), lessonPath),
	})
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
