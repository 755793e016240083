package adminRoutes

import (
	controllers "decourse/controllers/course"
	"decourse/middleware"
	validators "decourse/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up admin routes for access codes and availability
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware)

	adminGroup.Post("/access-codes",
		middleware.CheckPermissionMiddleware("manage-access-codes"),
		validators.CreateCode(), controllers.CreateAccessCode)

	adminGroup.Post("/access-codes/cleanup",
		middleware.CheckPermissionMiddleware("manage-access-codes"),
		controllers.CleanupExpiredAccess)

	adminGroup.Put("/course-availability",
		middleware.CheckPermissionMiddleware("manage-availability"),
		validators.Availability(), controllers.SetCourseAvailability)
}
