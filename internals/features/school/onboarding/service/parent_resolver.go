package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"sekolahku_backend/internals/constants"
	usermodel "sekolahku_backend/internals/features/users/user/model"
)

/* ==========================
   Identity resolver (orang tua)
   Satu identitas per email ternormalisasi — lintas baris & lintas batch.
========================== */

// ResolvedParent: hasil resolve. Password hanya terisi kalau identitas
// baru dibuat — kredensial lama tidak pernah di-regenerate atau dibocorkan lagi.
type ResolvedParent struct {
	User       *usermodel.UserModel
	Password   string
	WasCreated bool
}

// NormalizeEmail: trim + lowercase. Varian kapital/spasi dari alamat yang
// sama harus resolve ke identitas yang sama.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *BulkImportService) resolveOrCreateParent(ctx context.Context, fullName, email, phone string) (ResolvedParent, error) {
	norm := NormalizeEmail(email)

	existing, err := s.Repo.FindUserByEmailCI(ctx, norm)
	if err != nil {
		return ResolvedParent{}, fmt.Errorf("lookup parent by email: %w", err)
	}

	res := ResolvedParent{User: existing}
	if existing == nil {
		plain := GenerateParentPassword(s.Cfg)
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return ResolvedParent{}, fmt.Errorf("hash parent password: %w", err)
		}

		u := &usermodel.UserModel{
			FullName: strings.TrimSpace(fullName),
			Email:    norm,
			Password: string(hash),
			Role:     constants.RoleParent,
			IsActive: true,
		}
		switch err := s.Repo.CreateUser(ctx, u); {
		case err == nil:
			res.User, res.Password, res.WasCreated = u, plain, true
		case isUniqueViolation(err):
			// kalah race dengan batch lain — re-fetch, jangan bikin duplikat
			refetched, ferr := s.Repo.FindUserByEmailCI(ctx, norm)
			if ferr != nil {
				return ResolvedParent{}, fmt.Errorf("re-fetch parent after create conflict: %w", ferr)
			}
			if refetched == nil {
				return ResolvedParent{}, fmt.Errorf("parent %s menghilang setelah create conflict", norm)
			}
			res.User = refetched
		default:
			return ResolvedParent{}, fmt.Errorf("create parent user: %w", err)
		}
	}

	// Profil WAJIB ada, baik user baru maupun lama — self-heal kalau
	// pernah hilang di partial failure sebelumnya.
	var phonePtr *string
	if p := strings.TrimSpace(phone); p != "" {
		phonePtr = &p
	}
	if err := s.Repo.EnsureParentProfile(ctx, res.User.ID, phonePtr); err != nil {
		return ResolvedParent{}, fmt.Errorf("%w: %v", ErrParentProfile, err)
	}

	return res, nil
}
