// file: internals/features/school/onboarding/route/onboarding_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/school/onboarding/controller"
	"sekolahku_backend/internals/features/school/onboarding/repository"
	"sekolahku_backend/internals/features/school/onboarding/service"
	"sekolahku_backend/internals/mailer"
)

func buildService(db *gorm.DB) *service.BulkImportService {
	cfg := configs.LoadOnboardingConfig()

	var mail mailer.Mailer
	if configs.SendgridAPIKey != "" {
		mail = mailer.NewSendgridMailer(configs.SendgridAPIKey, cfg.MailFromName, cfg.MailFromAddress, cfg.SchoolDisplayName)
	} else {
		mail = mailer.NewConsoleMailer()
	}

	return service.NewBulkImportService(repository.NewGormRepository(db), mail, cfg)
}

// OnboardingAdminRoutes: start + poll bulk import (staff per sekolah).
func OnboardingAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := &controller.BulkImportController{Service: buildService(db)}

	grp := admin.Group("/:school_id/onboarding")
	{
		grp.Post("/bulk-imports", ctl.StartBulkImport)
		grp.Get("/bulk-imports/:id", ctl.GetBulkImportProgress)
	}
}

// ParentVerificationRoutes: redeem kode verifikasi (public, tanpa JWT).
func ParentVerificationRoutes(pub fiber.Router, db *gorm.DB) {
	ctl := &controller.ParentVerificationController{Service: buildService(db)}

	pub.Post("/parents/verify", ctl.VerifyParentCode)
}
