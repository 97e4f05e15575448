// file: internals/features/school/academics/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ======================================================
   Model: classes (rombel di dalam satu level)
====================================================== */

type ClassModel struct {
	// PK & Tenant
	ClassID       uuid.UUID `json:"class_id"        gorm:"column:class_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ClassSchoolID uuid.UUID `json:"class_school_id" gorm:"column:class_school_id;type:uuid;not null;index"`

	// Relasi tenant-safe
	ClassLevelID uuid.UUID `json:"class_level_id" gorm:"column:class_level_id;type:uuid;not null;index"`

	// Identitas
	ClassName string `json:"class_name" gorm:"column:class_name;type:varchar(120);not null"`

	// Atribut & status
	ClassOrdering int16 `json:"class_ordering"  gorm:"column:class_ordering;not null;default:0"`
	ClassIsActive bool  `json:"class_is_active" gorm:"column:class_is_active;not null;default:true"`

	// Audit
	ClassCreatedAt time.Time      `json:"class_created_at"           gorm:"column:class_created_at;type:timestamptz;not null;default:now();autoCreateTime"`
	ClassUpdatedAt time.Time      `json:"class_updated_at"           gorm:"column:class_updated_at;type:timestamptz;not null;default:now();autoUpdateTime"`
	ClassDeletedAt gorm.DeletedAt `json:"class_deleted_at,omitempty" gorm:"column:class_deleted_at;type:timestamptz;index"`
}

func (ClassModel) TableName() string { return "classes" }
