package controllers

import (
	"decourse/database"
	"decourse/middleware"
	"decourse/models"
	services "decourse/services/course"
	"decourse/utils"

	"github.com/gofiber/fiber/v2"
)

// ValidateAccessCode checks a temporary access code without redeeming it
func ValidateAccessCode(c *fiber.Ctx) error {
	code := c.Locals("accessCode").(string)

	validation, err := services.ValidateTemporaryAccessCode(code)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to validate code!", nil)
	}

	if !validation.IsValid {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Code validated.", fiber.Map{
			"is_valid": false,
			"reason":   validation.Reason,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Code validated.", fiber.Map{
		"is_valid":   true,
		"expires_at": validation.Code.ExpiresAt,
	})
}

// RedeemAccessCode redeems a temporary access code for the current user
func RedeemAccessCode(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedRedeemCode").(*struct {
		Code string `json:"code" validate:"required,len=8,uppercase"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	result, err := services.RedeemTemporaryAccessCode(reqData.Code, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to redeem code!", nil)
	}

	if !result.Success {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, result.Reason, nil)
	}

	go utils.SendTemporaryAccessEmail(user.Email, user.Name, result.Enrollment.ExpiresAt)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Code redeemed successfully!", result.Enrollment)
}

// GetTemporaryAccess returns the current user's active temporary enrollment
func GetTemporaryAccess(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollment, err := services.GetUserTemporaryEnrollment(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch temporary access!", nil)
	}

	if enrollment == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No active temporary access.", fiber.Map{
			"has_access": false,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Temporary access fetched successfully!", fiber.Map{
		"has_access": true,
		"enrollment": enrollment,
	})
}
