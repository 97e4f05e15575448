package service

import (
	"strings"

	"github.com/google/uuid"

	acadmodel "sekolahku_backend/internals/features/school/academics/model"
)

/* ==========================
   Placement resolver
   Hint level/class bisa UUID langsung, pola simbolik ("PRIMARY"),
   atau teks bebas. Chain matcher dievaluasi berurutan; fallback
   terakhir menjamin baris tidak pernah ditolak cuma karena hint
   tidak jelas — selama sekolah punya minimal satu level aktif
   dengan class.
========================== */

type levelMatcher interface {
	name() string
	match(hint string, catalog []LevelClasses) *LevelClasses
}

// 1) exact-id: hint adalah UUID level
type idMatcher struct{}

func (idMatcher) name() string { return "exact-id" }

func (idMatcher) match(hint string, catalog []LevelClasses) *LevelClasses {
	id, err := uuid.Parse(hint)
	if err != nil {
		return nil
	}
	for i := range catalog {
		if catalog[i].Level.LevelID == id {
			return &catalog[i]
		}
	}
	return nil
}

// 2) symbolic: token yang sudah dikenal → keyword nama level
type symbolicMatcher struct{}

var symbolicPatterns = map[string][]string{
	"KINDERGARTEN": {"kindergarten", "tk", "paud"},
	"PRIMARY":      {"primary", "elementary", "sd", "ibtidaiyah"},
	"JUNIOR":       {"junior", "smp", "tsanawiyah"},
	"SENIOR":       {"senior", "sma", "smk", "aliyah"},
}

func (symbolicMatcher) name() string { return "symbolic" }

func (symbolicMatcher) match(hint string, catalog []LevelClasses) *LevelClasses {
	keywords, ok := symbolicPatterns[strings.ToUpper(strings.TrimSpace(hint))]
	if !ok {
		return nil
	}
	for i := range catalog {
		lname := strings.ToLower(catalog[i].Level.LevelName)
		for _, kw := range keywords {
			if strings.Contains(lname, kw) {
				return &catalog[i]
			}
		}
	}
	return nil
}

// 3) fuzzy: substring case-insensitive di nama/kode level
type fuzzyMatcher struct{}

func (fuzzyMatcher) name() string { return "fuzzy" }

func (fuzzyMatcher) match(hint string, catalog []LevelClasses) *LevelClasses {
	needle := strings.ToLower(strings.TrimSpace(hint))
	if needle == "" {
		return nil
	}
	for i := range catalog {
		if strings.Contains(strings.ToLower(catalog[i].Level.LevelName), needle) {
			return &catalog[i]
		}
		if code := catalog[i].Level.LevelCode; code != nil &&
			strings.Contains(strings.ToLower(*code), needle) {
			return &catalog[i]
		}
	}
	return nil
}

// urutan prioritas tetap
var levelMatchers = []levelMatcher{idMatcher{}, symbolicMatcher{}, fuzzyMatcher{}}

// ResolvePlacement menerjemahkan hint jadi (level, class) konkret.
// Error hanya ErrNoPlacement — dan itu cuma mungkin kalau katalog
// tidak punya satu pun level dengan class.
func ResolvePlacement(catalog []LevelClasses, levelHint, classHint string) (acadmodel.LevelModel, acadmodel.ClassModel, error) {
	if len(catalog) == 0 {
		return acadmodel.LevelModel{}, acadmodel.ClassModel{}, ErrNoPlacement
	}

	// class hint berupa UUID menang langsung (sekalian menentukan levelnya)
	if classID, err := uuid.Parse(strings.TrimSpace(classHint)); err == nil {
		for i := range catalog {
			for _, cl := range catalog[i].Classes {
				if cl.ClassID == classID {
					return catalog[i].Level, cl, nil
				}
			}
		}
	}

	var entry *LevelClasses
	hint := strings.TrimSpace(levelHint)
	if hint != "" {
		for _, m := range levelMatchers {
			if got := m.match(hint, catalog); got != nil {
				entry = got
				break
			}
		}
	}

	// fallback: level tertua yang punya class
	if entry == nil || len(entry.Classes) == 0 {
		for i := range catalog {
			if len(catalog[i].Classes) > 0 {
				entry = &catalog[i]
				break
			}
		}
	}
	if entry == nil || len(entry.Classes) == 0 {
		return acadmodel.LevelModel{}, acadmodel.ClassModel{}, ErrNoPlacement
	}

	return entry.Level, resolveClass(entry.Classes, classHint), nil
}

// resolveClass: exact-id → fuzzy nama → class pertama di level.
func resolveClass(classes []acadmodel.ClassModel, classHint string) acadmodel.ClassModel {
	hint := strings.TrimSpace(classHint)
	if hint != "" {
		if id, err := uuid.Parse(hint); err == nil {
			for _, cl := range classes {
				if cl.ClassID == id {
					return cl
				}
			}
		}
		needle := strings.ToLower(hint)
		for _, cl := range classes {
			if strings.Contains(strings.ToLower(cl.ClassName), needle) {
				return cl
			}
		}
	}
	return classes[0]
}
