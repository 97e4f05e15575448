package service

import (
	"crypto/rand"
	"math/big"

	"sekolahku_backend/internals/configs"
)

/* ==========================
   Credential generator
   Semua output sekali pakai — user diharapkan ganti sendiri.
========================== */

const (
	// tanpa karakter ambigu (0/O, 1/l/I) biar enak dibaca dari kertas
	passwordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeAlphabet     = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	verificationCodeLen = 6
)

func randomString(alphabet string, n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand gagal hanya kalau OS entropy source rusak
			panic(err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}

// GenerateStudentPassword: password sementara siswa.
func GenerateStudentPassword(cfg configs.OnboardingConfig) string {
	n := cfg.StudentPasswordLen
	if n < 8 {
		n = 8
	}
	return randomString(passwordAlphabet, n)
}

// GenerateParentPassword: password sementara orang tua.
func GenerateParentPassword(cfg configs.OnboardingConfig) string {
	n := cfg.ParentPasswordLen
	if n < 8 {
		n = 8
	}
	return randomString(passwordAlphabet, n)
}

// GenerateVerificationCode: 6 alfanumerik uppercase, tanpa checksum.
// Pertahanan satu-satunya terhadap replay adalah window expiry.
func GenerateVerificationCode() string {
	return randomString(codeAlphabet, verificationCodeLen)
}
