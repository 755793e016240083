package courseRoutes

import (
	controllers "decourse/controllers/course"
	"decourse/middleware"
	validators "decourse/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	// Code validation is public: visitors check codes before signing up
	app.Get("/access/validate/:code", validators.CodeParam(), controllers.ValidateAccessCode)

	courseGroup := app.Group("/course", middleware.JWTMiddleware, middleware.CourseAvailabilityGate)

	// Progress tracking
	courseGroup.Post("/lesson/complete", validators.LessonComplete(), controllers.MarkLessonComplete)
	courseGroup.Get("/lesson/access", validators.LessonAccessQuery(), controllers.GetLessonAccess)
	courseGroup.Get("/progress/:track/:platform", validators.TrackPlatformParams(), controllers.GetTrackProgress)
	courseGroup.Get("/overview", controllers.GetCourseOverview)

	// Certificates
	courseGroup.Get("/certificate/:platform/eligibility", validators.PlatformParam(), controllers.GetCertificateEligibility)
	courseGroup.Post("/certificate/:platform/issue", validators.PlatformParam(), controllers.IssueCertificate)

	// Temporary access codes
	userGroup := app.Group("/user", middleware.JWTMiddleware)
	userGroup.Post("/access/redeem", validators.RedeemCode(), controllers.RedeemAccessCode)
	userGroup.Get("/temporary-access", controllers.GetTemporaryAccess)
	userGroup.Get("/certificates", controllers.GetUserCertificates)
}
