package courseValidator

import (
	"decourse/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CodeParam validates the :code route param
func CodeParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
		if len(code) != 8 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid access code format!", nil)
		}

		c.Locals("accessCode", code)
		return c.Next()
	}
}

// RedeemCode validates the code redemption request body
func RedeemCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code string `json:"code" validate:"required,len=8,uppercase"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		// Codes are shown uppercase; accept lowercase input
		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedRedeemCode", reqData)
		return c.Next()
	}
}

// CreateCode validates the admin create-code request body
func CreateCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ExpiresInDays int `json:"expires_in_days" validate:"gte=-1,lte=365"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCreateCode", reqData)
		return c.Next()
	}
}

// Availability validates the admin availability toggle body
func Availability() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IsAvailable *bool `json:"is_available" validate:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedAvailability", reqData)
		return c.Next()
	}
}
