package timeutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"08:00:00", "08:00:00", false},
		{"23:59:59", "23:59:59", false},
		{"09:55", "09:55:00", false},
		{" 10:00:00 ", "10:00:00", false},
		{"25:00:00", "", true},
		{"noon", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tod, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tod.String())
		})
	}
}

func TestTimeOfDay_WithinIsInclusive(t *testing.T) {
	start := MustParseTimeOfDay("08:00:00")
	end := MustParseTimeOfDay("10:00:00")

	assert.True(t, MustParseTimeOfDay("08:00:00").Within(start, end))
	assert.True(t, MustParseTimeOfDay("10:00:00").Within(start, end))
	assert.True(t, MustParseTimeOfDay("09:30:00").Within(start, end))
	assert.False(t, MustParseTimeOfDay("07:59:59").Within(start, end))
	assert.False(t, MustParseTimeOfDay("10:00:01").Within(start, end))
}

func TestTimeOfDay_OnKeepsLocation(t *testing.T) {
	loc, err := LoadZone("Asia/Kolkata")
	require.NoError(t, err)

	day := time.Date(2024, time.May, 10, 17, 45, 0, 0, loc)
	deadline := MustParseTimeOfDay("09:55:00").On(day)

	assert.Equal(t, time.Date(2024, time.May, 10, 9, 55, 0, 0, loc), deadline)
	assert.Equal(t, loc, deadline.Location())
	assert.Equal(t, MustParseTimeOfDay("17:45:00"), TimeOfDayOf(day))
}

func TestTimeOfDay_OnIsWallClockAcrossDST(t *testing.T) {
	loc, err := LoadZone("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name string
		day  time.Time
		tod  string
	}{
		{"spring forward", time.Date(2026, time.March, 8, 12, 0, 0, 0, loc), "09:55:00"},
		{"fall back", time.Date(2026, time.November, 1, 12, 0, 0, 0, loc), "10:00:00"},
		{"fall back early morning", time.Date(2026, time.November, 1, 0, 30, 0, 0, loc), "00:15:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParseTimeOfDay(tt.tod).On(tt.day)
			assert.Equal(t, tt.tod, got.Format(LayoutTimeOnly))
			assert.Equal(t, tt.day.Day(), got.Day())
			assert.Equal(t, MustParseTimeOfDay(tt.tod), TimeOfDayOf(got))
		})
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 14, 5, 9, 0, time.UTC)

	tests := []struct {
		pattern string
		want    string
	}{
		{"yyyyMMdd", "20240307"},
		{"", "20240307"},
		{"yyyy-MM-dd", "2024-03-07"},
		{"ddMMyy", "070324"},
		{"yyyyMMdd_HHmmss", "20240307_140509"},
		{"'D'yyyyMMdd", "D20240307"},
		{"%Y%m%d", "20240307"},
		{"%d.%m.%Y", "07.03.2024"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(ts, tt.pattern))
		})
	}
}

func TestValidateDateFormat(t *testing.T) {
	assert.NoError(t, ValidateDateFormat("yyyyMMdd"))
	assert.NoError(t, ValidateDateFormat("%Y%m%d"))
	assert.Error(t, ValidateDateFormat(""))
	assert.Error(t, ValidateDateFormat("---"))
}

func TestLoadZone(t *testing.T) {
	loc, err := LoadZone("India Standard Time")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())

	loc, err = LoadZone("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = LoadZone("Mars/Olympus_Mons")
	assert.Error(t, err)
}

func TestZoneClock_IgnoresHostZone(t *testing.T) {
	loc, err := LoadZone("Asia/Kolkata")
	require.NoError(t, err)

	clock := NewZoneClock(loc)
	now := clock.Now()

	assert.Equal(t, loc, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)

	clock.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), clock.Now())

	clock.Set(start)
	assert.Equal(t, start, clock.Now())
	assert.Equal(t, time.UTC, clock.Location())
}
