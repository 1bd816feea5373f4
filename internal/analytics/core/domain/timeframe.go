package domain

import "time"

// CustomTimeframe selects caller supplied bounds instead of a preset.
const CustomTimeframe = "custom"

// DefaultTimeframe is used when a request names none.
const DefaultTimeframe = "30d"

type Timeframe struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Days  int    `json:"days" yaml:"days"` // 0 = all time
}

// Resolve turns the preset into a range ending now (open ended).
func (t Timeframe) Resolve(now time.Time) DateRange {
	if t.Days <= 0 {
		return DateRange{}
	}
	start := now.AddDate(0, 0, -t.Days)
	return DateRange{Start: &start}
}

type Timeframes []Timeframe

func DefaultTimeframes() Timeframes {
	return Timeframes{
		{Key: "30d", Label: "Last 30 days", Days: 30},
		{Key: "60d", Label: "Last 60 days", Days: 60},
		{Key: "90d", Label: "Last 90 days", Days: 90},
		{Key: "all", Label: "All time", Days: 0},
	}
}

func (ts Timeframes) Lookup(key string) (Timeframe, bool) {
	for _, t := range ts {
		if t.Key == key {
			return t, true
		}
	}
	return Timeframe{}, false
}
