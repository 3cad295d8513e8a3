package model

import "time"

// RawEventRecord is a single untyped lineup entry as it appears in the
// dataset JSON. It is untrusted input: any field may be missing or
// malformed, and validation happens in internal/lineup.
//
// Older dataset revisions used the field name "dia" instead of "day";
// both are accepted, with "day" taking precedence.
type RawEventRecord struct {
	Artist  string `json:"artist"`
	Day     int    `json:"day,omitempty"`
	Dia     int    `json:"dia,omitempty"`
	Stage   string `json:"stage"`
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
}

// FestivalEvent is a validated, time-normalized performance. It is built
// once at dataset load time and never mutated afterwards; a dataset
// refresh rebuilds the whole set.
type FestivalEvent struct {
	// ID is derived from the slugified artist name plus a day suffix,
	// e.g. "bandalos-chinos-d1". Unique within a day for curated data.
	ID string `json:"id"`

	Artist string `json:"artist"`
	Day    int    `json:"day"`
	Stage  string `json:"stage"`

	// StartAt / EndAt are the absolute UTC instants from the dataset.
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`

	// StartMinutes / EndMinutes are grid-relative minutes: 0 is the grid
	// start hour (14:00 local), and sets crossing midnight continue past
	// 600 rather than wrapping back to the top of the grid.
	StartMinutes int `json:"startMinutes"`
	EndMinutes   int `json:"endMinutes"`

	// Duration is EndMinutes - StartMinutes, always > 0 for valid input.
	Duration int `json:"duration"`
}

// StageColumn groups one day's events for a single stage, sorted
// ascending by StartMinutes.
type StageColumn struct {
	Name   string          `json:"name"`
	Events []FestivalEvent `json:"events"`
}

// DayInfo describes one configured festival day.
type DayInfo struct {
	Day   int    `json:"day"`
	Label string `json:"label"`
	Date  string `json:"date"`
}

// DaySchedule is the renderable grid for a single festival day. Stages
// follow the configured display priority; StartMinute/EndMinute are
// hour-aligned and bound every event of the day.
type DaySchedule struct {
	Day         int           `json:"day"`
	Label       string        `json:"label"`
	Date        string        `json:"date"`
	Stages      []StageColumn `json:"stages"`
	StartMinute int           `json:"startMinute"`
	EndMinute   int           `json:"endMinute"`
}
