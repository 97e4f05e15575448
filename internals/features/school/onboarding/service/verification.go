package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

/* ==========================
   Verification resolver
   Orang tua menukarkan (email, kode) → relasi parent_schools ter-verify.
========================== */

// VerifiedParent: hasil redeem kode.
type VerifiedParent struct {
	ParentID  uuid.UUID
	StudentID *uuid.UUID
}

// VerifyParentCode memvalidasi (email, kode) terhadap relasi pending.
// Semua kasus negatif — kode salah, email salah, kadaluarsa, sudah
// dipakai — pulang dengan ErrInvalidOrExpiredCode yang sama persis,
// supaya penyerang tidak bisa enumerate bagian mana yang salah.
func (s *BulkImportService) VerifyParentCode(ctx context.Context, email, code string) (*VerifiedParent, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	email = strings.TrimSpace(email)
	if code == "" || email == "" {
		return nil, ErrInvalidOrExpiredCode
	}

	rel, err := s.Repo.FindUnverifiedRelationshipByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("lookup verification code: %w", err)
	}
	if rel == nil {
		return nil, ErrInvalidOrExpiredCode
	}
	if NowFunc().UTC().After(rel.ParentSchoolCodeExpiresAt) {
		return nil, ErrInvalidOrExpiredCode
	}
	// email dicocokkan exact — kode-nya yang jadi secret utama
	if rel.ParentSchoolParentEmailCache != email {
		return nil, ErrInvalidOrExpiredCode
	}

	now := NowFunc().UTC()
	rel.ParentSchoolIsVerified = true
	rel.ParentSchoolVerifiedAt = &now
	if err := s.Repo.MarkRelationshipVerified(ctx, rel); err != nil {
		return nil, fmt.Errorf("mark relationship verified: %w", err)
	}

	out := &VerifiedParent{ParentID: rel.ParentSchoolParentUserID}

	// siswa pertama yang terhubung ke relasi ini (kalau ada)
	student, err := s.Repo.FirstStudentForParentSchool(ctx, rel.ParentSchoolID)
	if err != nil {
		log.Printf("[VERIFY] lookup siswa untuk relasi %s gagal: %v", rel.ParentSchoolID, err)
	} else if student != nil {
		out.StudentID = &student.SchoolStudentID
	}

	return out, nil
}
