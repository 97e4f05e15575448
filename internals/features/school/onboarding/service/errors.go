package service

import (
	"errors"
	"fmt"
	"strings"
)

/* ==========================
   Taksonomi error per baris
========================== */

type RowErrorClass string

const (
	RowErrValidation RowErrorClass = "validation" // input baris tidak lengkap / salah format
	RowErrDuplicate  RowErrorClass = "duplicate"  // email siswa sudah terpakai
	RowErrPlacement  RowErrorClass = "placement"  // sekolah tidak punya level/class aktif sama sekali
	RowErrIntegrity  RowErrorClass = "integrity"  // entitas referensi hilang di tengah proses
	RowErrUnknown    RowErrorClass = "unknown"
)

// RowError: kegagalan satu baris. Ditangkap di boundary per-row,
// tidak pernah menjalar ke orchestrator sebagai error.
type RowError struct {
	Class      RowErrorClass
	Row        int
	Identifier string // nama / email siswa untuk log operator
	Err        error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %s: %v", e.Row, e.Identifier, e.Class, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

func newRowError(class RowErrorClass, row int, identifier string, err error) *RowError {
	return &RowError{Class: class, Row: row, Identifier: identifier, Err: err}
}

/* ==========================
   Sentinel & deteksi DB error
========================== */

var (
	// ErrParentProfile: profil orang tua gagal di-self-heal — invariant
	// "satu identitas = satu profil" pecah, harus muncul di log, bukan ditelan.
	ErrParentProfile = errors.New("parent profile could not be ensured")

	// ErrNoPlacement: sekolah tidak punya satu pun level aktif dengan class.
	ErrNoPlacement = errors.New("school has no active level/class")

	// ErrInvalidOrExpiredCode: satu pesan generik untuk SEMUA kasus negatif
	// verifikasi (salah kode, salah email, kadaluarsa, sudah dipakai) —
	// jangan bocorkan bagian mana yang salah.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired verification code")
)

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "unique constraint"))
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "foreign key constraint")
}
