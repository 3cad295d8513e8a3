// Package lineup builds the validated, time-normalized festival model
// from the raw dataset records and assembles it into per-day schedule
// grids.
package lineup

import (
	"time"

	"github.com/pkg/errors"

	appLog "github.com/lucianorarrua/cosquin-rock-lineup/internal/log"
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/model"
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/timegrid"
)

// Options controls event building.
type Options struct {
	// UTCOffsetHours is the fixed offset from UTC to festival-local time
	// (e.g. -3 for Argentina).
	UTCOffsetHours int

	// GridStartHour is the local hour the schedule grid starts at (14
	// means the grid origin is 14:00 and 01:00 counts as "25:00").
	GridStartHour int

	// Strict rejects the whole batch on the first invalid record instead
	// of skipping it.
	Strict bool

	// DefaultDay is assigned when a record carries neither "day" nor
	// "dia". Zero means 1.
	DefaultDay int
}

// BuildEvents transforms raw dataset records into FestivalEvents.
//
// Day resolution prefers the "day" field, falls back to the legacy
// "dia" field and finally to Options.DefaultDay. Timestamps must be
// RFC 3339 UTC; a record with an unparseable timestamp or a
// non-positive duration is invalid. In lenient mode (the default)
// invalid records are logged and skipped so one bad row never takes
// down the whole lineup; in strict mode the first one aborts the build.
func BuildEvents(raw []model.RawEventRecord, opts Options) ([]model.FestivalEvent, error) {
	if opts.DefaultDay <= 0 {
		opts.DefaultDay = 1
	}

	events := make([]model.FestivalEvent, 0, len(raw))

	for i, rec := range raw {
		ev, err := buildEvent(rec, opts)
		if err != nil {
			if opts.Strict {
				return nil, errors.Wrapf(err, "record %d (%q)", i, rec.Artist)
			}
			appLog.Error("skipping invalid lineup record", err, "index", i, "artist", rec.Artist)
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

func buildEvent(rec model.RawEventRecord, opts Options) (model.FestivalEvent, error) {
	var ev model.FestivalEvent

	if rec.Artist == "" {
		return ev, errors.New("missing artist")
	}

	day := rec.Day
	if day == 0 {
		day = rec.Dia
	}
	if day == 0 {
		day = opts.DefaultDay
	}

	startAt, err := time.Parse(time.RFC3339, rec.StartAt)
	if err != nil {
		return ev, errors.Wrap(err, "bad startAt")
	}
	endAt, err := time.Parse(time.RFC3339, rec.EndAt)
	if err != nil {
		return ev, errors.Wrap(err, "bad endAt")
	}

	start := timegrid.NormalizeUTC(startAt, opts.UTCOffsetHours, opts.GridStartHour)
	end := timegrid.NormalizeUTC(endAt, opts.UTCOffsetHours, opts.GridStartHour)

	if end <= start {
		return ev, errors.Errorf("non-positive duration (%d -> %d)", start, end)
	}

	ev = model.FestivalEvent{
		ID:           EventID(rec.Artist, day),
		Artist:       rec.Artist,
		Day:          day,
		Stage:        rec.Stage,
		StartAt:      startAt.UTC(),
		EndAt:        endAt.UTC(),
		StartMinutes: start,
		EndMinutes:   end,
		Duration:     end - start,
	}
	return ev, nil
}
