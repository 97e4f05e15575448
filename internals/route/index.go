// file: internals/route/index.go
package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	onboardingRoute "sekolahku_backend/internals/features/school/onboarding/route"
	schoolMiddleware "sekolahku_backend/internals/middlewares/auth_school"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ===================== ADMIN (per school) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + Scope)...")
	admin := app.Group("/api/a",
		schoolMiddleware.AuthJWT(schoolMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ===================== FEATURES =====================
	log.Println("[INFO] Setting up OnboardingRoutes...")
	onboardingRoute.OnboardingAdminRoutes(admin, db)
	onboardingRoute.ParentVerificationRoutes(public, db)
}
