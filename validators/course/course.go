package courseValidator

import (
	"decourse/middleware"
	courseModels "decourse/models/course"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range verrs {
			errors[verr.Field()] = "Failed on the '" + verr.Tag() + "' rule!"
		}
	} else {
		errors["body"] = "Invalid request body!"
	}
	return errors
}

// TrackPlatformParams validates the :track/:platform route params
func TrackPlatformParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		track := strings.TrimSpace(c.Params("track"))
		platform := strings.TrimSpace(c.Params("platform"))

		errors := make(map[string]string)
		if !courseModels.ValidTrack(track) {
			errors["track"] = "Unknown track!"
		}
		if !courseModels.ValidPlatform(platform) {
			errors["platform"] = "Unknown platform!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("track", track)
		c.Locals("platform", platform)
		return c.Next()
	}
}

// PlatformParam validates the :platform route param
func PlatformParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		platform := strings.TrimSpace(c.Params("platform"))
		if !courseModels.ValidPlatform(platform) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown platform!", nil)
		}

		c.Locals("platform", platform)
		return c.Next()
	}
}

// LessonComplete validates the lesson completion request body
func LessonComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LessonPath       string `json:"lesson_path" validate:"required,startswith=/"`
			TimeSpentSeconds int64  `json:"time_spent_seconds" validate:"gte=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedLessonComplete", reqData)
		return c.Next()
	}
}

// LessonAccessQuery validates the ?path= query for lesson access checks
func LessonAccessQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := strings.TrimSpace(c.Query("path"))
		if path == "" || !strings.HasPrefix(path, "/") {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A lesson path is required!", nil)
		}

		c.Locals("lessonPath", path)
		return c.Next()
	}
}
