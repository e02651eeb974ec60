package dashboard

import (
	"strconv"
	"time"

	"github.com/mediapulse/pulse/errors"
)

// Date range presets. Numeric presets are day counts.
const (
	PresetAll    = "all"
	PresetCustom = "custom"
	PresetWeek   = "7"
	PresetMonth  = "30"
	PresetQuarter = "90"
)

// DateRange bounds the range-sensitive dashboard resources. From and To are
// full timestamps as the backend expects them; empty means unbounded.
type DateRange struct {
	Preset string
	From   string
	To     string
}

// AllRange is the unbounded range applied on a fresh dashboard load.
func AllRange() DateRange {
	return DateRange{Preset: PresetAll}
}

// PresetRange resolves a named preset at the given reference time. A day
// preset N yields a lower bound of N days ago at midnight and no upper bound,
// so "last 7 days" always includes today.
func PresetRange(preset string, now time.Time) (DateRange, error) {
	if preset == PresetAll {
		return AllRange(), nil
	}
	days, err := strconv.Atoi(preset)
	if err != nil || days <= 0 {
		return DateRange{}, errors.InvalidInput("date range preset must be 'all', 'custom' or a positive day count")
	}
	from := now.AddDate(0, 0, -days)
	return DateRange{
		Preset: preset,
		From:   from.Format("2006-01-02") + "T00:00:00",
	}, nil
}

// CustomRange builds an explicit range from date-only strings (YYYY-MM-DD).
// Bounds expand to the start and end of their day; either side may be empty.
func CustomRange(fromDate, toDate string) DateRange {
	r := DateRange{Preset: PresetCustom}
	if fromDate != "" {
		r.From = fromDate + "T00:00:00"
	}
	if toDate != "" {
		r.To = toDate + "T23:59:59"
	}
	return r
}

// Params returns the date_from / date_to values for API queries.
func (r DateRange) Params() (dateFrom, dateTo string) {
	return r.From, r.To
}

// IsAll reports whether the range is unbounded.
func (r DateRange) IsAll() bool {
	return r.From == "" && r.To == ""
}
