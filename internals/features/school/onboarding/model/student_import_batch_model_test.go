package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		name  string
		total int
		ok    int
		fail  int
		want  int
	}{
		{"total nol", 0, 0, 0, 0},
		{"belum mulai", 10, 0, 0, 0},
		{"setengah jalan", 10, 3, 2, 50},
		{"pembulatan ke atas", 3, 1, 0, 33},
		{"dua pertiga", 3, 2, 0, 67},
		{"selesai dengan gagal", 4, 3, 1, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := StudentImportBatchModel{
				StudentImportBatchTotalRecords:      tc.total,
				StudentImportBatchSuccessfulRecords: tc.ok,
				StudentImportBatchFailedRecords:     tc.fail,
			}
			assert.Equal(t, tc.want, b.ProgressPercent())
		})
	}
}

func TestImportLogRoundTrip(t *testing.T) {
	entries := []ImportLogEntry{
		{Kind: ImportLogSuccess, Row: 1, StudentName: "Ani", StudentNumber: "2026-0001"},
		{Kind: ImportLogFailure, Row: 2, Identifier: "Budi", Reason: "validation", Error: "date_of_birth wajib diisi"},
	}

	raw, err := MarshalImportLog(entries)
	assert.NoError(t, err)

	got, err := UnmarshalImportLog(raw)
	assert.NoError(t, err)
	assert.Equal(t, entries, got)

	// log kosong tetap array JSON valid, bukan null
	empty, err := MarshalImportLog(nil)
	assert.NoError(t, err)
	assert.JSONEq(t, "[]", string(empty))
}
