package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	SendgridAPIKey   string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	SendgridAPIKey = GetEnv("SENDGRID_API_KEY")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	if SendgridAPIKey == "" {
		log.Println("⚠️ SENDGRID_API_KEY belum diset — mailer fallback ke console.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// ONBOARDING CONFIG
// =======================

// OnboardingConfig dipass eksplisit ke service onboarding — jangan pakai
// global string untuk nama sekolah / panjang password.
type OnboardingConfig struct {
	SchoolDisplayName  string        // dipakai di template email welcome
	StudentPasswordLen int           // panjang password sementara siswa
	ParentPasswordLen  int           // panjang password sementara orang tua
	VerificationTTL    time.Duration // umur kode verifikasi orang tua
	MailFromAddress    string
	MailFromName       string
}

func DefaultOnboardingConfig() OnboardingConfig {
	return OnboardingConfig{
		SchoolDisplayName:  "Sekolahku",
		StudentPasswordLen: 10,
		ParentPasswordLen:  12,
		VerificationTTL:    48 * time.Hour,
		MailFromAddress:    "noreply@sekolahku.id",
		MailFromName:       "Sekolahku",
	}
}

// LoadOnboardingConfig membaca override dari ENV (semua opsional).
func LoadOnboardingConfig() OnboardingConfig {
	cfg := DefaultOnboardingConfig()

	if v := GetEnv("SCHOOL_DISPLAY_NAME"); v != "" {
		cfg.SchoolDisplayName = v
	}
	if v := GetEnv("MAIL_FROM_ADDRESS"); v != "" {
		cfg.MailFromAddress = v
	}
	if v := GetEnv("MAIL_FROM_NAME"); v != "" {
		cfg.MailFromName = v
	}
	if v := GetEnv("VERIFICATION_TTL_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			cfg.VerificationTTL = time.Duration(h) * time.Hour
		}
	}
	return cfg
}
