// file: internals/features/school/students/model/school_student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ======================================================
   Model: school_students (siswa terdaftar per sekolah)
====================================================== */

type SchoolStudentModel struct {
	// PK & Tenant
	SchoolStudentID       uuid.UUID `json:"school_student_id"        gorm:"column:school_student_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolStudentSchoolID uuid.UUID `json:"school_student_school_id" gorm:"column:school_student_school_id;type:uuid;not null;index"`

	// Relasi tenant-safe
	SchoolStudentUserID  uuid.UUID `json:"school_student_user_id"  gorm:"column:school_student_user_id;type:uuid;not null;index"`
	SchoolStudentLevelID uuid.UUID `json:"school_student_level_id" gorm:"column:school_student_level_id;type:uuid;not null"`
	SchoolStudentClassID uuid.UUID `json:"school_student_class_id" gorm:"column:school_student_class_id;type:uuid;not null"`

	// Relasi orang tua (diisi setelah parent_schools dibuat)
	SchoolStudentParentSchoolID *uuid.UUID `json:"school_student_parent_school_id,omitempty" gorm:"column:school_student_parent_school_id;type:uuid;index"`

	// Identitas akademik
	SchoolStudentNumber       string `json:"school_student_number"        gorm:"column:school_student_number;type:varchar(20);not null;index"`
	SchoolStudentAcademicYear string `json:"school_student_academic_year" gorm:"column:school_student_academic_year;type:varchar(9);not null"`

	// Data pribadi
	SchoolStudentGender      string    `json:"school_student_gender"        gorm:"column:school_student_gender;type:varchar(10);not null"`
	SchoolStudentDateOfBirth time.Time `json:"school_student_date_of_birth" gorm:"column:school_student_date_of_birth;type:date;not null"`
	SchoolStudentPhone       *string   `json:"school_student_phone,omitempty" gorm:"column:school_student_phone;type:varchar(20)"`

	// ===== Kontak wali (denormalized — fallback darurat) =====
	SchoolStudentGuardianNameCache  string  `json:"school_student_guardian_name_cache"            gorm:"column:school_student_guardian_name_cache;type:varchar(80)"`
	SchoolStudentGuardianEmailCache string  `json:"school_student_guardian_email_cache"           gorm:"column:school_student_guardian_email_cache;type:varchar(255)"`
	SchoolStudentGuardianPhoneCache *string `json:"school_student_guardian_phone_cache,omitempty" gorm:"column:school_student_guardian_phone_cache;type:varchar(20)"`

	// Audit & soft delete
	SchoolStudentCreatedAt time.Time      `json:"school_student_created_at"           gorm:"column:school_student_created_at;type:timestamptz;not null;default:now();autoCreateTime"`
	SchoolStudentUpdatedAt time.Time      `json:"school_student_updated_at"           gorm:"column:school_student_updated_at;type:timestamptz;not null;default:now();autoUpdateTime"`
	SchoolStudentDeletedAt gorm.DeletedAt `json:"school_student_deleted_at,omitempty" gorm:"column:school_student_deleted_at;index"`
}

func (SchoolStudentModel) TableName() string { return "school_students" }
