// file: internals/features/school/onboarding/controller/bulk_import_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	dto "sekolahku_backend/internals/features/school/onboarding/dto"
	"sekolahku_backend/internals/features/school/onboarding/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type BulkImportController struct {
	Service *service.BulkImportService
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// =======================================================
// START (buat batch lalu langsung return; proses jalan async)
// POST /api/a/:school_id/onboarding/bulk-imports
// =======================================================

func (ctl *BulkImportController) StartBulkImport(c *fiber.Ctx) error {
	// 🔐 school_id dari path + tenant guard token
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}
	// 🔐 staff guard
	if err := helperAuth.EnsureStaffSchool(c, "bulk import siswa"); err != nil {
		return err
	}
	submitterID, err := helperAuth.ResolveUserIDFromContext(c)
	if err != nil {
		return err
	}

	var in dto.BulkImportRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := in.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	batch, err := ctl.Service.StartBulkImport(c.Context(), schoolID, submitterID, in)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "bulk import dimulai", dto.ToBulkImportStartResponse(*batch))
}

// =======================================================
// PROGRESS (dipoll berkala oleh frontend)
// GET /api/a/:school_id/onboarding/bulk-imports/:id
// =======================================================

func (ctl *BulkImportController) GetBulkImportProgress(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, "bulk import siswa"); err != nil {
		return err
	}

	batchID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	batch, err := ctl.Service.GetProgress(c.Context(), schoolID, batchID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if batch == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "batch tidak ditemukan")
	}

	resp, err := dto.ToBulkImportProgressResponse(*batch)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", resp)
}
