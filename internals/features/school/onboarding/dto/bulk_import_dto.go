// File: internals/features/school/onboarding/dto/bulk_import_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	onbmodel "sekolahku_backend/internals/features/school/onboarding/model"
)

// Validator instance
var validate = validator.New()

////////////////////////////////////////////////////////////////////////////////
// BULK IMPORT — request
////////////////////////////////////////////////////////////////////////////////

// StudentImportRow: satu baris input mentah (tidak dipersist apa adanya —
// hanya hidup selama batch berjalan).
type StudentImportRow struct {
	FullName    string `json:"full_name"     validate:"required,min=3,max=80"`
	Gender      string `json:"gender"        validate:"required,oneof=male female"`
	DateOfBirth string `json:"date_of_birth" validate:"required"` // format 2006-01-02
	Email       string `json:"email"         validate:"required,email"`
	Phone       string `json:"phone"         validate:"omitempty,max=20"`

	ParentFullName string `json:"parent_full_name" validate:"required,min=3,max=80"`
	ParentEmail    string `json:"parent_email"     validate:"required,email"`
	ParentPhone    string `json:"parent_phone"     validate:"omitempty,max=20"`
}

// Validate memeriksa field wajib + format tanggal lahir.
// Mengembalikan error pertama yang ketemu, per baris.
func (r *StudentImportRow) Validate() (time.Time, error) {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
	r.Email = strings.TrimSpace(r.Email)
	r.ParentFullName = strings.TrimSpace(r.ParentFullName)
	r.ParentEmail = strings.TrimSpace(r.ParentEmail)

	if err := validate.Struct(r); err != nil {
		return time.Time{}, err
	}
	dob, err := time.Parse("2006-01-02", strings.TrimSpace(r.DateOfBirth))
	if err != nil {
		return time.Time{}, err
	}
	return dob, nil
}

// BulkImportRequest: payload start bulk import.
// LevelHint/ClassHint boleh UUID langsung, pola simbolik ("PRIMARY"),
// atau potongan teks bebas — placement resolver yang menerjemahkan.
// Catatan: baris TIDAK divalidasi di sini (tanpa dive) — baris rusak
// ditangani per-row oleh record processor supaya tidak menolak satu batch.
type BulkImportRequest struct {
	Students     []StudentImportRow `json:"students" validate:"required,min=1"`
	AcademicYear string             `json:"academic_year,omitempty"`
	LevelHint    string             `json:"level_id,omitempty"`
	ClassHint    string             `json:"class_id,omitempty"`
}

func (r *BulkImportRequest) Validate() error {
	return validate.Struct(r)
}

////////////////////////////////////////////////////////////////////////////////
// BULK IMPORT — response
////////////////////////////////////////////////////////////////////////////////

type BulkImportStartResponse struct {
	ID           uuid.UUID                  `json:"id"`
	TotalRecords int                        `json:"total_records"`
	Status       onbmodel.ImportBatchStatus `json:"status"`
}

type BulkImportProgressResponse struct {
	ID                uuid.UUID                  `json:"id"`
	Status            onbmodel.ImportBatchStatus `json:"status"`
	TotalRecords      int                        `json:"total_records"`
	SuccessfulRecords int                        `json:"successful_records"`
	FailedRecords     int                        `json:"failed_records"`
	Progress          int                        `json:"progress"`
	ErrorLog          []onbmodel.ImportLogEntry  `json:"error_log"`
	CreatedAt         time.Time                  `json:"created_at"`
	CompletedAt       *time.Time                 `json:"completed_at,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToBulkImportStartResponse(m onbmodel.StudentImportBatchModel) BulkImportStartResponse {
	return BulkImportStartResponse{
		ID:           m.StudentImportBatchID,
		TotalRecords: m.StudentImportBatchTotalRecords,
		Status:       m.StudentImportBatchStatus,
	}
}

func ToBulkImportProgressResponse(m onbmodel.StudentImportBatchModel) (BulkImportProgressResponse, error) {
	entries, err := onbmodel.UnmarshalImportLog(m.StudentImportBatchResultLog)
	if err != nil {
		return BulkImportProgressResponse{}, err
	}
	return BulkImportProgressResponse{
		ID:                m.StudentImportBatchID,
		Status:            m.StudentImportBatchStatus,
		TotalRecords:      m.StudentImportBatchTotalRecords,
		SuccessfulRecords: m.StudentImportBatchSuccessfulRecords,
		FailedRecords:     m.StudentImportBatchFailedRecords,
		Progress:          m.ProgressPercent(),
		ErrorLog:          entries,
		CreatedAt:         m.StudentImportBatchCreatedAt,
		CompletedAt:       m.StudentImportBatchCompletedAt,
	}, nil
}

////////////////////////////////////////////////////////////////////////////////
// PARENT VERIFICATION
////////////////////////////////////////////////////////////////////////////////

type VerifyParentRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6"`
}

func (r *VerifyParentRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	return validate.Struct(r)
}

type VerifyParentResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	StudentID *uuid.UUID `json:"student_id,omitempty"`
}
