// file: internals/features/school/academics/model/level_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ======================================================
   Model: levels (jenjang — katalog placement)
====================================================== */

type LevelModel struct {
	// PK & Tenant
	LevelID       uuid.UUID `json:"level_id"        gorm:"column:level_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	LevelSchoolID uuid.UUID `json:"level_school_id" gorm:"column:level_school_id;type:uuid;not null;index"`

	// Identitas
	LevelName string  `json:"level_name"           gorm:"column:level_name;type:varchar(120);not null"`
	LevelCode *string `json:"level_code,omitempty" gorm:"column:level_code;type:varchar(40)"`

	// Atribut & status
	LevelOrdering int16 `json:"level_ordering"  gorm:"column:level_ordering;not null;default:0"`
	LevelIsActive bool  `json:"level_is_active" gorm:"column:level_is_active;not null;default:true"`

	// Audit
	LevelCreatedAt time.Time      `json:"level_created_at"           gorm:"column:level_created_at;type:timestamptz;not null;default:now();autoCreateTime"`
	LevelUpdatedAt time.Time      `json:"level_updated_at"           gorm:"column:level_updated_at;type:timestamptz;not null;default:now();autoUpdateTime"`
	LevelDeletedAt gorm.DeletedAt `json:"level_deleted_at,omitempty" gorm:"column:level_deleted_at;type:timestamptz;index"`
}

func (LevelModel) TableName() string { return "levels" }
