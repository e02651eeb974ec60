package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetRangeDays(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	r, err := PresetRange("7", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03T00:00:00", r.From)
	assert.Equal(t, "", r.To, "day presets leave the upper bound open so today is included")

	r, err = PresetRange("30", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-08T00:00:00", r.From)

	r, err = PresetRange("90", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-10T00:00:00", r.From)
}

func TestPresetRangeAll(t *testing.T) {
	r, err := PresetRange(PresetAll, time.Now())
	require.NoError(t, err)
	assert.True(t, r.IsAll())

	dateFrom, dateTo := r.Params()
	assert.Empty(t, dateFrom)
	assert.Empty(t, dateTo)
}

func TestPresetRangeInvalid(t *testing.T) {
	for _, preset := range []string{"", "abc", "-3", "0"} {
		_, err := PresetRange(preset, time.Now())
		assert.Error(t, err, "preset %q", preset)
	}
}

func TestCustomRangeExpandsDayBounds(t *testing.T) {
	r := CustomRange("2025-03-01", "2025-03-07")
	assert.Equal(t, "2025-03-01T00:00:00", r.From)
	assert.Equal(t, "2025-03-07T23:59:59", r.To)

	// Either bound may be open.
	r = CustomRange("2025-03-01", "")
	assert.Equal(t, "2025-03-01T00:00:00", r.From)
	assert.Empty(t, r.To)

	r = CustomRange("", "2025-03-07")
	assert.Empty(t, r.From)
	assert.Equal(t, "2025-03-07T23:59:59", r.To)
}
