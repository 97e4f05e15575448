package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	acadmodel "sekolahku_backend/internals/features/school/academics/model"
)

// katalog standar untuk test: TK (tanpa class), SD (2 class), SMP (1 class).
// Urutan = urutan fallback (level tertua duluan).
func testCatalog() []LevelClasses {
	tkID := uuid.New()
	sdID := uuid.New()
	smpID := uuid.New()
	sdCode := "SD"

	return []LevelClasses{
		{
			Level: acadmodel.LevelModel{LevelID: tkID, LevelName: "Taman Kanak-Kanak", LevelOrdering: 1},
			// level aktif tapi belum punya rombel
			Classes: nil,
		},
		{
			Level: acadmodel.LevelModel{LevelID: sdID, LevelName: "Sekolah Dasar", LevelCode: &sdCode, LevelOrdering: 2},
			Classes: []acadmodel.ClassModel{
				{ClassID: uuid.New(), ClassLevelID: sdID, ClassName: "1A", ClassOrdering: 1},
				{ClassID: uuid.New(), ClassLevelID: sdID, ClassName: "1B", ClassOrdering: 2},
			},
		},
		{
			Level: acadmodel.LevelModel{LevelID: smpID, LevelName: "SMP Tunas Bangsa", LevelOrdering: 3},
			Classes: []acadmodel.ClassModel{
				{ClassID: uuid.New(), ClassLevelID: smpID, ClassName: "7A", ClassOrdering: 1},
			},
		},
	}
}

func TestResolvePlacement_ExactLevelID(t *testing.T) {
	catalog := testCatalog()
	smp := catalog[2]

	level, class, err := ResolvePlacement(catalog, smp.Level.LevelID.String(), "")
	require.NoError(t, err)
	assert.Equal(t, smp.Level.LevelID, level.LevelID)
	assert.Equal(t, "7A", class.ClassName)
}

func TestResolvePlacement_SymbolicHint(t *testing.T) {
	catalog := testCatalog()

	for _, hint := range []string{"PRIMARY", "primary", "  Primary  "} {
		level, class, err := ResolvePlacement(catalog, hint, "")
		require.NoError(t, err, "hint=%q", hint)
		assert.Equal(t, "Sekolah Dasar", level.LevelName, "hint=%q", hint)
		assert.Equal(t, "1A", class.ClassName)
	}

	level, _, err := ResolvePlacement(catalog, "JUNIOR", "")
	require.NoError(t, err)
	assert.Equal(t, "SMP Tunas Bangsa", level.LevelName)
}

func TestResolvePlacement_FuzzyHint(t *testing.T) {
	catalog := testCatalog()

	level, _, err := ResolvePlacement(catalog, "tunas", "")
	require.NoError(t, err)
	assert.Equal(t, "SMP Tunas Bangsa", level.LevelName)

	// fuzzy di level_code juga
	level, _, err = ResolvePlacement(catalog, "sd", "")
	require.NoError(t, err)
	assert.Equal(t, "Sekolah Dasar", level.LevelName)
}

func TestResolvePlacement_GarbageHintFallsBack(t *testing.T) {
	catalog := testCatalog()

	// hint tidak cocok apa-apa → level tertua yang punya class, bukan error
	level, class, err := ResolvePlacement(catalog, "zzz-tidak-ada", "")
	require.NoError(t, err)
	assert.Equal(t, "Sekolah Dasar", level.LevelName)
	assert.Equal(t, "1A", class.ClassName)
}

func TestResolvePlacement_EmptyHintsDefault(t *testing.T) {
	catalog := testCatalog()

	level, class, err := ResolvePlacement(catalog, "", "")
	require.NoError(t, err)
	// TK dilewati (tanpa class), SD yang kepilih
	assert.Equal(t, "Sekolah Dasar", level.LevelName)
	assert.Equal(t, "1A", class.ClassName)
}

func TestResolvePlacement_ClassUUIDWins(t *testing.T) {
	catalog := testCatalog()
	target := catalog[1].Classes[1] // 1B

	// hint level menunjuk SMP, tapi class UUID valid langsung menang
	level, class, err := ResolvePlacement(catalog, "JUNIOR", target.ClassID.String())
	require.NoError(t, err)
	assert.Equal(t, "Sekolah Dasar", level.LevelName)
	assert.Equal(t, target.ClassID, class.ClassID)
}

func TestResolvePlacement_ClassNameHint(t *testing.T) {
	catalog := testCatalog()

	_, class, err := ResolvePlacement(catalog, "PRIMARY", "1b")
	require.NoError(t, err)
	assert.Equal(t, "1B", class.ClassName)
}

func TestResolvePlacement_EmptyCatalog(t *testing.T) {
	_, _, err := ResolvePlacement(nil, "PRIMARY", "")
	assert.ErrorIs(t, err, ErrNoPlacement)
}

func TestResolvePlacement_NoLevelWithClasses(t *testing.T) {
	catalog := []LevelClasses{
		{Level: acadmodel.LevelModel{LevelID: uuid.New(), LevelName: "Taman Kanak-Kanak"}},
	}
	_, _, err := ResolvePlacement(catalog, "", "")
	assert.ErrorIs(t, err, ErrNoPlacement)
}

func TestResolvePlacement_LevelWithoutClassesFallsThrough(t *testing.T) {
	catalog := testCatalog()

	// hint cocok ke TK (fuzzy), tapi TK tidak punya class → fallback
	level, _, err := ResolvePlacement(catalog, "kanak", "")
	require.NoError(t, err)
	assert.Equal(t, "Sekolah Dasar", level.LevelName)
}
