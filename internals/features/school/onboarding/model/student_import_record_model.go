// file: internals/features/school/onboarding/model/student_import_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* ======================================================
   Model: student_import_records
   Satu baris per input row yang BERHASIL — link batch → siswa.
====================================================== */

type StudentImportRecordModel struct {
	StudentImportRecordID      uuid.UUID `json:"student_import_record_id"       gorm:"column:student_import_record_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentImportRecordBatchID uuid.UUID `json:"student_import_record_batch_id" gorm:"column:student_import_record_batch_id;type:uuid;not null;index"`

	StudentImportRecordSchoolStudentID uuid.UUID `json:"student_import_record_school_student_id" gorm:"column:student_import_record_school_student_id;type:uuid;not null"`
	StudentImportRecordRowNumber       int       `json:"student_import_record_row_number"        gorm:"column:student_import_record_row_number;not null"`

	StudentImportRecordCreatedAt time.Time `json:"student_import_record_created_at" gorm:"column:student_import_record_created_at;type:timestamptz;not null;default:now();autoCreateTime"`
}

func (StudentImportRecordModel) TableName() string { return "student_import_records" }
