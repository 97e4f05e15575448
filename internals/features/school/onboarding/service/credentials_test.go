package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/configs"
)

func TestGenerateStudentPassword(t *testing.T) {
	cfg := configs.DefaultOnboardingConfig()

	pw := GenerateStudentPassword(cfg)
	require.Len(t, pw, cfg.StudentPasswordLen)
	for _, ch := range pw {
		assert.Contains(t, passwordAlphabet, string(ch))
	}
}

func TestGenerateParentPassword(t *testing.T) {
	cfg := configs.DefaultOnboardingConfig()

	pw := GenerateParentPassword(cfg)
	require.Len(t, pw, cfg.ParentPasswordLen)
}

func TestGeneratePassword_MinimumLength(t *testing.T) {
	// konfigurasi ngawur tetap tidak boleh menghasilkan password pendek
	cfg := configs.OnboardingConfig{StudentPasswordLen: 3, ParentPasswordLen: 0}

	assert.Len(t, GenerateStudentPassword(cfg), 8)
	assert.Len(t, GenerateParentPassword(cfg), 8)
}

func TestGeneratePassword_NoAmbiguousChars(t *testing.T) {
	cfg := configs.DefaultOnboardingConfig()
	for i := 0; i < 50; i++ {
		pw := GenerateStudentPassword(cfg)
		assert.False(t, strings.ContainsAny(pw, "0O1lI"), "password %q mengandung karakter ambigu", pw)
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	code := GenerateVerificationCode()
	require.Len(t, code, 6)
	assert.Equal(t, strings.ToUpper(code), code)
	for _, ch := range code {
		assert.Contains(t, codeAlphabet, string(ch))
	}
}

func TestGenerateCredentials_Unique(t *testing.T) {
	cfg := configs.DefaultOnboardingConfig()

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		pw := GenerateStudentPassword(cfg)
		require.False(t, seen[pw], "password duplikat: %s", pw)
		seen[pw] = true
	}
}
