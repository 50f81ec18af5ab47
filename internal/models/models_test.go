package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObservedFile_SizeMB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  float64
	}{
		{0, 0},
		{1024 * 1024, 1},
		{200 * 1024 * 1024, 200},
		{1536 * 1024, 1.5},
		{1234567, 1.18},
	}
	for _, tt := range tests {
		f := ObservedFile{SizeBytes: tt.bytes}
		assert.Equal(t, tt.want, f.SizeMB(), "bytes=%d", tt.bytes)
	}
}

func TestNewObservedFile(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	mod := time.Date(2024, time.May, 10, 3, 0, 0, 0, time.UTC)

	f := NewObservedFile("/data/hold/ACME_20240510.X12", 42, mod, loc)

	assert.Equal(t, "ACME_20240510.X12", f.Name)
	assert.Equal(t, ".X12", f.Extension)
	assert.Equal(t, loc, f.ModTime.Location())
	assert.Equal(t, 8, f.ModTime.Hour())
	assert.True(t, f.HasExtension(".x12"))
	assert.True(t, f.HasExtension("x12"))
	assert.False(t, f.HasExtension(".txt"))
}

func TestDedupKey(t *testing.T) {
	day := time.Date(2024, time.May, 10, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "Step1Missing-ACME-20240510", DedupKey("Step1", "Missing", "ACME", "", day))
	assert.Equal(t, "Step3Stuck-ACME-a.x12-20240510", DedupKey("Step3", "Stuck", "ACME", "a.x12", day))
	assert.NotEqual(t,
		DedupKey("Step1", "Missing", "ACME", "", day),
		DedupKey("Step1", "Missing", "ACME", "", day.Add(time.Minute)),
		"key changes with the local date")
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "CRITICAL", SeverityCritical.String())
	assert.Equal(t, "UNKNOWN", Severity(9).String())
	assert.Equal(t, "[ACME] Step 1 file missing", ProcessSubject("ACME", "Step 1 file missing"))
}
