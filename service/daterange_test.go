package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRange_Presets(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		preset string
		start  string
		end    string
	}{
		{PresetToday, "2024-03-15", "2024-03-15"},
		{PresetYesterday, "2024-03-14", "2024-03-14"},
		{PresetLast7Days, "2024-03-09", "2024-03-15"},
		{PresetLast30Days, "2024-02-15", "2024-03-15"},
		{PresetThisMonth, "2024-03-01", "2024-03-15"},
		{PresetThisYear, "2024-01-01", "2024-03-15"},
	}
	for _, tt := range tests {
		rng, err := ResolveRange(RangeSelection{Preset: tt.preset}, now)
		require.NoErrorf(t, err, "preset %s", tt.preset)
		assert.Equalf(t, tt.start+"~"+tt.end, rng.String(), "preset %s", tt.preset)
		assert.Equal(t, tt.preset, rng.Preset)
	}
}

func TestResolveRange_Custom(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	rng, err := ResolveRange(RangeSelection{Preset: PresetCustom, Start: "2024-01-10", End: "2024-01-20"}, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", rng.Query().Get("start"))
	assert.Equal(t, "2024-01-20", rng.Query().Get("end"))

	bad := []RangeSelection{
		{Preset: PresetCustom, Start: "2024-01-20", End: "2024-01-10"},
		{Preset: PresetCustom, Start: "20240110", End: "2024-01-20"},
		{Preset: PresetCustom, Start: "2024-01-10"},
		{Preset: "lastDecade"},
	}
	for _, sel := range bad {
		_, err := ResolveRange(sel, now)
		assert.ErrorIsf(t, err, ErrInvalidRange, "%+v", sel)
	}
}
