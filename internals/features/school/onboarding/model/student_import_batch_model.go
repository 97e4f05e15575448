// file: internals/features/school/onboarding/model/student_import_batch_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* ======================================================
   ENUM: import_batch_status
====================================================== */

type ImportBatchStatus string

const (
	ImportBatchPending    ImportBatchStatus = "pending"
	ImportBatchProcessing ImportBatchStatus = "processing"
	ImportBatchCompleted  ImportBatchStatus = "completed"
	ImportBatchFailed     ImportBatchStatus = "failed"
)

/* ======================================================
   Log hasil per baris (disimpan sebagai satu blob JSONB,
   dibaca selalu utuh — tidak pernah di-query per field)
====================================================== */

// ImportLogEntry: tagged union per baris. Kind menentukan field mana yang terisi.
type ImportLogEntry struct {
	Kind string `json:"kind"` // "success" | "failure"
	Row  int    `json:"row"`

	// success
	StudentName     string `json:"student_name,omitempty"`
	StudentEmail    string `json:"student_email,omitempty"`
	StudentNumber   string `json:"student_number,omitempty"`
	StudentPassword string `json:"student_password,omitempty"`
	ParentEmail     string `json:"parent_email,omitempty"`
	ParentPassword  string `json:"parent_password,omitempty"` // hanya kalau parent baru dibuat

	// failure
	Identifier string `json:"identifier,omitempty"` // nama/email siswa di baris gagal
	Reason     string `json:"reason,omitempty"`     // klasifikasi: validation|duplicate|placement|integrity|unknown
	Error      string `json:"error,omitempty"`
}

const (
	ImportLogSuccess = "success"
	ImportLogFailure = "failure"
)

func MarshalImportLog(entries []ImportLogEntry) (datatypes.JSON, error) {
	if entries == nil {
		entries = []ImportLogEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func UnmarshalImportLog(raw datatypes.JSON) ([]ImportLogEntry, error) {
	if len(raw) == 0 {
		return []ImportLogEntry{}, nil
	}
	var entries []ImportLogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

/* ======================================================
   Model: student_import_batches (job state — audit trail,
   tidak pernah dihapus)
====================================================== */

type StudentImportBatchModel struct {
	// PK & Tenant
	StudentImportBatchID       uuid.UUID `json:"student_import_batch_id"        gorm:"column:student_import_batch_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentImportBatchSchoolID uuid.UUID `json:"student_import_batch_school_id" gorm:"column:student_import_batch_school_id;type:uuid;not null;index"`

	// Submitter
	StudentImportBatchSubmitterUserID uuid.UUID `json:"student_import_batch_submitter_user_id" gorm:"column:student_import_batch_submitter_user_id;type:uuid;not null"`

	// Progress
	StudentImportBatchTotalRecords      int `json:"student_import_batch_total_records"      gorm:"column:student_import_batch_total_records;not null;default:0"`
	StudentImportBatchSuccessfulRecords int `json:"student_import_batch_successful_records" gorm:"column:student_import_batch_successful_records;not null;default:0"`
	StudentImportBatchFailedRecords     int `json:"student_import_batch_failed_records"     gorm:"column:student_import_batch_failed_records;not null;default:0"`

	// Status
	StudentImportBatchStatus ImportBatchStatus `json:"student_import_batch_status" gorm:"column:student_import_batch_status;type:varchar(20);not null;default:'pending'"`

	// Log hasil (success + failure, urut baris)
	StudentImportBatchResultLog datatypes.JSON `json:"student_import_batch_result_log" gorm:"column:student_import_batch_result_log;type:jsonb;not null;default:'[]'"`

	// Jejak waktu
	StudentImportBatchCreatedAt   time.Time  `json:"student_import_batch_created_at"             gorm:"column:student_import_batch_created_at;type:timestamptz;not null;default:now();autoCreateTime"`
	StudentImportBatchUpdatedAt   time.Time  `json:"student_import_batch_updated_at"             gorm:"column:student_import_batch_updated_at;type:timestamptz;not null;default:now();autoUpdateTime"`
	StudentImportBatchCompletedAt *time.Time `json:"student_import_batch_completed_at,omitempty" gorm:"column:student_import_batch_completed_at;type:timestamptz"`
}

func (StudentImportBatchModel) TableName() string { return "student_import_batches" }

// ProgressPercent: round(100 * (ok+fail) / total). 0 kalau total 0.
func (b *StudentImportBatchModel) ProgressPercent() int {
	if b.StudentImportBatchTotalRecords <= 0 {
		return 0
	}
	done := b.StudentImportBatchSuccessfulRecords + b.StudentImportBatchFailedRecords
	return int(float64(done)/float64(b.StudentImportBatchTotalRecords)*100 + 0.5)
}
