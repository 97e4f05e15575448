package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
)

// Keys Locals yang dihydrate oleh middleware AuthJWT
const (
	LocUserID   = "user_id"
	LocSchoolID = "school_id"
	LocRole     = "role"
)

// ResolveSchoolIDFromContext mengambil school_id aktif:
// 1) path param :school_id (wajib valid UUID)
// 2) kalau token punya school_id, harus match dengan path (tenant guard)
func ResolveSchoolIDFromContext(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("school_id"))
	if raw == "" {
		if v, ok := c.Locals(LocSchoolID).(string); ok {
			raw = strings.TrimSpace(v)
		}
	}
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "school_id tidak ditemukan")
	}

	schoolID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "school_id tidak valid")
	}

	// tenant guard: school di token (kalau ada) harus sama dengan path
	if tok, ok := c.Locals(LocSchoolID).(string); ok && strings.TrimSpace(tok) != "" {
		tokID, err := uuid.Parse(strings.TrimSpace(tok))
		if err == nil && tokID != schoolID {
			return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Akses ke school lain ditolak")
		}
	}

	return schoolID, nil
}

// ResolveUserIDFromContext mengambil user_id dari Locals (diisi AuthJWT).
func ResolveUserIDFromContext(c *fiber.Ctx) (uuid.UUID, error) {
	v, ok := c.Locals(LocUserID).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	userID, err := uuid.Parse(strings.TrimSpace(v))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak valid")
	}
	return userID, nil
}

// EnsureStaffSchool: hanya teacher/admin/owner yang boleh lewat.
func EnsureStaffSchool(c *fiber.Ctx, feature string) error {
	role, _ := c.Locals(LocRole).(string)
	role = strings.ToLower(strings.TrimSpace(role))
	for _, r := range constants.StaffRoles {
		if role == r {
			return nil
		}
	}
	return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorStaff(feature))
}
