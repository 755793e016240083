package controllers

import (
	"decourse/database"
	"decourse/middleware"
	"decourse/models"
	services "decourse/services/course"
	"decourse/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// GetCertificateEligibility computes eligibility for a platform certificate
func GetCertificateEligibility(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	platform := c.Locals("platform").(string)

	eligibility, err := services.CheckCertificateEligibility(userID, platform)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check eligibility!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Eligibility checked successfully!", eligibility)
}

// IssueCertificate issues the certificate for a completed platform
func IssueCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	platform := c.Locals("platform").(string)

	cert, created, err := services.IssueCertificate(userID, user.Name, user.Email, platform)
	if err != nil {
		if errors.Is(err, services.ErrNotEligible) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete all three tracks before requesting a certificate!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	if !created {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", cert)
	}

	go utils.SendCertificateEmail(user.Email, user.Name, cert.Platform, cert.CertificateNumber)
	go utils.NotifyCertificateIssued(cert)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", cert)
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificates, err := services.GetUserCertificates(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        len(certificates),
	})
}
