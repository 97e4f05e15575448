package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// UserProfileModel: data pelengkap per user (1:1, unique di user_id).
// Untuk orang tua, baris ini yang di-self-heal oleh parent resolver.
type UserProfileModel struct {
	// PK
	UserProfileID uuid.UUID `gorm:"column:user_profile_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"user_profile_id"`

	// FK & Unique
	UserProfileUserID uuid.UUID `gorm:"column:user_profile_user_id;type:uuid;not null;uniqueIndex:uq_user_profiles_user_id" json:"user_profile_user_id"`

	// Columns
	UserProfileDateOfBirth *time.Time `gorm:"column:user_profile_date_of_birth;type:date" json:"user_profile_date_of_birth,omitempty"`
	UserProfileGender      *Gender    `gorm:"column:user_profile_gender;type:varchar(10)" json:"user_profile_gender,omitempty"`
	UserProfilePhoneNumber *string    `gorm:"column:user_profile_phone_number;size:20;index:idx_user_profiles_phone" json:"user_profile_phone_number,omitempty"`

	// Timestamps
	UserProfileCreatedAt time.Time      `gorm:"column:user_profile_created_at;autoCreateTime" json:"user_profile_created_at"`
	UserProfileUpdatedAt time.Time      `gorm:"column:user_profile_updated_at;autoUpdateTime" json:"user_profile_updated_at"`
	UserProfileDeletedAt gorm.DeletedAt `gorm:"column:user_profile_deleted_at;index" json:"user_profile_deleted_at,omitempty"`
}

func (UserProfileModel) TableName() string { return "user_profiles" }
