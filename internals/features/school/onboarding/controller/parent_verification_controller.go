// file: internals/features/school/onboarding/controller/parent_verification_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	dto "sekolahku_backend/internals/features/school/onboarding/dto"
	"sekolahku_backend/internals/features/school/onboarding/service"
	helper "sekolahku_backend/internals/helpers"
)

type ParentVerificationController struct {
	Service *service.BulkImportService
}

// =======================================================
// VERIFY (public — orang tua menukarkan kode dari email)
// POST /api/public/parents/verify
// =======================================================

func (ctl *ParentVerificationController) VerifyParentCode(c *fiber.Ctx) error {
	var in dto.VerifyParentRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := in.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := ctl.Service.VerifyParentCode(c.Context(), in.Email, in.Code)
	if err != nil {
		// satu pesan generik untuk semua kasus negatif — jangan bocorkan
		// bagian mana dari (email, kode) yang salah
		if errors.Is(err, service.ErrInvalidOrExpiredCode) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Kode verifikasi tidak valid atau sudah kadaluarsa")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := dto.VerifyParentResponse{
		Success:   true,
		Message:   "Verifikasi orang tua berhasil",
		ParentID:  &res.ParentID,
		StudentID: res.StudentID,
	}
	return helper.JsonOK(c, "ok", out)
}
