// file: internals/features/school/onboarding/model/parent_school_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ======================================================
   Model: parent_schools (relasi orang tua ↔ sekolah)
   Lifecycle: dibuat unverified + kode berumur 48 jam,
   flip ke verified sekali saja lewat verification resolver.
====================================================== */

type ParentSchoolModel struct {
	// PK & Tenant
	ParentSchoolID       uuid.UUID `json:"parent_school_id"        gorm:"column:parent_school_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ParentSchoolSchoolID uuid.UUID `json:"parent_school_school_id" gorm:"column:parent_school_school_id;type:uuid;not null;index"`

	// Relasi
	ParentSchoolParentUserID uuid.UUID `json:"parent_school_parent_user_id" gorm:"column:parent_school_parent_user_id;type:uuid;not null;index"`

	// ===== Cache dari users (biar verifikasi tidak perlu join) =====
	ParentSchoolParentEmailCache string `json:"parent_school_parent_email_cache" gorm:"column:parent_school_parent_email_cache;type:varchar(255);not null"`
	ParentSchoolParentNameCache  string `json:"parent_school_parent_name_cache"  gorm:"column:parent_school_parent_name_cache;type:varchar(80)"`

	// Verifikasi
	ParentSchoolVerificationCode string     `json:"-"                                        gorm:"column:parent_school_verification_code;type:varchar(12);not null;index:idx_parent_schools_code"`
	ParentSchoolCodeExpiresAt    time.Time  `json:"parent_school_code_expires_at"            gorm:"column:parent_school_code_expires_at;type:timestamptz;not null"`
	ParentSchoolIsVerified       bool       `json:"parent_school_is_verified"                gorm:"column:parent_school_is_verified;not null;default:false"`
	ParentSchoolVerifiedAt       *time.Time `json:"parent_school_verified_at,omitempty"      gorm:"column:parent_school_verified_at;type:timestamptz"`

	// Audit
	ParentSchoolCreatedAt time.Time      `json:"parent_school_created_at"           gorm:"column:parent_school_created_at;type:timestamptz;not null;default:now();autoCreateTime"`
	ParentSchoolUpdatedAt time.Time      `json:"parent_school_updated_at"           gorm:"column:parent_school_updated_at;type:timestamptz;not null;default:now();autoUpdateTime"`
	ParentSchoolDeletedAt gorm.DeletedAt `json:"parent_school_deleted_at,omitempty" gorm:"column:parent_school_deleted_at;index"`
}

func (ParentSchoolModel) TableName() string { return "parent_schools" }
