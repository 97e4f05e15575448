package service

import (
	"context"

	"github.com/google/uuid"

	acadmodel "sekolahku_backend/internals/features/school/academics/model"
	onbmodel "sekolahku_backend/internals/features/school/onboarding/model"
	stumodel "sekolahku_backend/internals/features/school/students/model"
	usermodel "sekolahku_backend/internals/features/users/user/model"
)

// LevelClasses: satu level aktif beserta class aktifnya.
// Katalog diurutkan dari level tertua (ordering lalu created_at) —
// urutan itu yang dipakai fallback placement.
type LevelClasses struct {
	Level   acadmodel.LevelModel
	Classes []acadmodel.ClassModel
}

// Repository: semua akses persistence yang dibutuhkan pipeline onboarding.
// Implementasi GORM ada di package repository; test pakai fake in-memory.
type Repository interface {
	// ===== users & profiles =====

	// FindUserByEmailCI: lookup case-insensitive. (nil, nil) kalau tidak ada.
	FindUserByEmailCI(ctx context.Context, email string) (*usermodel.UserModel, error)
	CreateUser(ctx context.Context, u *usermodel.UserModel) error
	// EnsureParentProfile: INSERT ... ON CONFLICT DO NOTHING di user_id —
	// self-heal kalau profil sempat hilang di partial failure sebelumnya.
	EnsureParentProfile(ctx context.Context, userID uuid.UUID, phone *string) error

	// ===== placement catalog =====

	ActivePlacements(ctx context.Context, schoolID uuid.UUID) ([]LevelClasses, error)

	// ===== students =====

	// CountStudentsInCalendarYear: basis nomor induk (monoton, boleh bolong).
	CountStudentsInCalendarYear(ctx context.Context, schoolID uuid.UUID, year int) (int64, error)
	CreateStudent(ctx context.Context, s *stumodel.SchoolStudentModel) error
	SetStudentParentSchool(ctx context.Context, studentID, parentSchoolID uuid.UUID) error
	FirstStudentForParentSchool(ctx context.Context, parentSchoolID uuid.UUID) (*stumodel.SchoolStudentModel, error)

	// ===== parent-school relationships =====

	CreateParentSchool(ctx context.Context, ps *onbmodel.ParentSchoolModel) error
	// FindUnverifiedRelationshipByCode: (nil, nil) kalau tidak ketemu.
	FindUnverifiedRelationshipByCode(ctx context.Context, code string) (*onbmodel.ParentSchoolModel, error)
	MarkRelationshipVerified(ctx context.Context, ps *onbmodel.ParentSchoolModel) error

	// ===== batches & records =====

	CreateBatch(ctx context.Context, b *onbmodel.StudentImportBatchModel) error
	// UpdateBatchProgress: checkpoint/finalize — satu-satunya penulis batch.
	UpdateBatchProgress(ctx context.Context, b *onbmodel.StudentImportBatchModel) error
	GetBatch(ctx context.Context, schoolID, batchID uuid.UUID) (*onbmodel.StudentImportBatchModel, error)
	CreateImportRecord(ctx context.Context, r *onbmodel.StudentImportRecordModel) error
}
