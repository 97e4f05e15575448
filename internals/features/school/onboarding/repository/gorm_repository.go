// file: internals/features/school/onboarding/repository/gorm_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	acadmodel "sekolahku_backend/internals/features/school/academics/model"
	onbmodel "sekolahku_backend/internals/features/school/onboarding/model"
	"sekolahku_backend/internals/features/school/onboarding/service"
	stumodel "sekolahku_backend/internals/features/school/students/model"
	usermodel "sekolahku_backend/internals/features/users/user/model"
)

// GormRepository: implementasi service.Repository di atas GORM/Postgres.
type GormRepository struct {
	DB *gorm.DB
}

var _ service.Repository = (*GormRepository)(nil)

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

/* ==========================
   users & profiles
========================== */

func (r *GormRepository) FindUserByEmailCI(ctx context.Context, email string) (*usermodel.UserModel, error) {
	var u usermodel.UserModel
	err := r.DB.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormRepository) CreateUser(ctx context.Context, u *usermodel.UserModel) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

// EnsureParentProfile: INSERT ... ON CONFLICT DO NOTHING di user_id —
// idempotent, aman dipanggil untuk user baru maupun lama.
func (r *GormRepository) EnsureParentProfile(ctx context.Context, userID uuid.UUID, phone *string) error {
	p := usermodel.UserProfileModel{
		UserProfileUserID:      userID,
		UserProfilePhoneNumber: phone,
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_profile_user_id"}},
			DoNothing: true,
		}).
		Create(&p).Error
}

/* ==========================
   placement catalog
========================== */

func (r *GormRepository) ActivePlacements(ctx context.Context, schoolID uuid.UUID) ([]service.LevelClasses, error) {
	var levels []acadmodel.LevelModel
	if err := r.DB.WithContext(ctx).
		Where("level_school_id = ? AND level_is_active = TRUE", schoolID).
		Order("level_ordering ASC, level_created_at ASC").
		Find(&levels).Error; err != nil {
		return nil, err
	}

	var classes []acadmodel.ClassModel
	if err := r.DB.WithContext(ctx).
		Where("class_school_id = ? AND class_is_active = TRUE", schoolID).
		Order("class_ordering ASC, class_created_at ASC").
		Find(&classes).Error; err != nil {
		return nil, err
	}

	byLevel := make(map[uuid.UUID][]acadmodel.ClassModel, len(levels))
	for _, cl := range classes {
		byLevel[cl.ClassLevelID] = append(byLevel[cl.ClassLevelID], cl)
	}

	out := make([]service.LevelClasses, 0, len(levels))
	for _, lv := range levels {
		out = append(out, service.LevelClasses{Level: lv, Classes: byLevel[lv.LevelID]})
	}
	return out, nil
}

/* ==========================
   students
========================== */

func (r *GormRepository) CountStudentsInCalendarYear(ctx context.Context, schoolID uuid.UUID, year int) (int64, error) {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var n int64
	err := r.DB.WithContext(ctx).
		Model(&stumodel.SchoolStudentModel{}).
		Where("school_student_school_id = ? AND school_student_created_at >= ? AND school_student_created_at < ?",
			schoolID, start, end).
		Count(&n).Error
	return n, err
}

func (r *GormRepository) CreateStudent(ctx context.Context, s *stumodel.SchoolStudentModel) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepository) SetStudentParentSchool(ctx context.Context, studentID, parentSchoolID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Model(&stumodel.SchoolStudentModel{}).
		Where("school_student_id = ?", studentID).
		Update("school_student_parent_school_id", parentSchoolID).Error
}

func (r *GormRepository) FirstStudentForParentSchool(ctx context.Context, parentSchoolID uuid.UUID) (*stumodel.SchoolStudentModel, error) {
	var s stumodel.SchoolStudentModel
	err := r.DB.WithContext(ctx).
		Where("school_student_parent_school_id = ?", parentSchoolID).
		Order("school_student_created_at ASC").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

/* ==========================
   parent-school relationships
========================== */

func (r *GormRepository) CreateParentSchool(ctx context.Context, ps *onbmodel.ParentSchoolModel) error {
	return r.DB.WithContext(ctx).Create(ps).Error
}

func (r *GormRepository) FindUnverifiedRelationshipByCode(ctx context.Context, code string) (*onbmodel.ParentSchoolModel, error) {
	var ps onbmodel.ParentSchoolModel
	err := r.DB.WithContext(ctx).
		Where("parent_school_verification_code = ? AND parent_school_is_verified = FALSE", code).
		First(&ps).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

func (r *GormRepository) MarkRelationshipVerified(ctx context.Context, ps *onbmodel.ParentSchoolModel) error {
	return r.DB.WithContext(ctx).
		Model(&onbmodel.ParentSchoolModel{}).
		Where("parent_school_id = ? AND parent_school_is_verified = FALSE", ps.ParentSchoolID).
		Updates(map[string]any{
			"parent_school_is_verified": true,
			"parent_school_verified_at": ps.ParentSchoolVerifiedAt,
		}).Error
}

/* ==========================
   batches & records
========================== */

func (r *GormRepository) CreateBatch(ctx context.Context, b *onbmodel.StudentImportBatchModel) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *GormRepository) UpdateBatchProgress(ctx context.Context, b *onbmodel.StudentImportBatchModel) error {
	return r.DB.WithContext(ctx).
		Model(&onbmodel.StudentImportBatchModel{}).
		Where("student_import_batch_id = ?", b.StudentImportBatchID).
		Updates(map[string]any{
			"student_import_batch_status":             b.StudentImportBatchStatus,
			"student_import_batch_successful_records": b.StudentImportBatchSuccessfulRecords,
			"student_import_batch_failed_records":     b.StudentImportBatchFailedRecords,
			"student_import_batch_result_log":         b.StudentImportBatchResultLog,
			"student_import_batch_completed_at":       b.StudentImportBatchCompletedAt,
		}).Error
}

func (r *GormRepository) GetBatch(ctx context.Context, schoolID, batchID uuid.UUID) (*onbmodel.StudentImportBatchModel, error) {
	var b onbmodel.StudentImportBatchModel
	err := r.DB.WithContext(ctx).
		Where("student_import_batch_id = ? AND student_import_batch_school_id = ?", batchID, schoolID).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormRepository) CreateImportRecord(ctx context.Context, rec *onbmodel.StudentImportRecordModel) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}
