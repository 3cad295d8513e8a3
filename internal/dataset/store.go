package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lucianorarrua/cosquin-rock-lineup/internal/config"
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/lineup"
	appLog "github.com/lucianorarrua/cosquin-rock-lineup/internal/log"
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/model"
)

// Snapshot is one immutable build of the lineup model. Consumers read
// it without locking; a refresh produces a brand-new Snapshot.
type Snapshot struct {
	Events    []model.FestivalEvent
	Schedules []model.DaySchedule
	ByID      map[string]model.FestivalEvent
	LoadedAt  time.Time
}

// Store holds the current Snapshot behind a read-write lock. It is the
// single process-wide owner of lineup data.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore returns an empty store. Callers are expected to Reload
// before serving traffic.
func NewStore() *Store {
	return &Store{snap: &Snapshot{ByID: map[string]model.FestivalEvent{}}}
}

// Snapshot returns the current snapshot. The returned value must be
// treated as read-only.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// swap installs a freshly built snapshot.
func (s *Store) swap(events []model.FestivalEvent, schedules []model.DaySchedule) {
	byID := make(map[string]model.FestivalEvent, len(events))
	for _, ev := range events {
		if _, dup := byID[ev.ID]; dup {
			// Two artists slugifying to the same ID on the same day make
			// the selection set ambiguous; curated data should never do
			// this, so surface it loudly.
			appLog.Error("duplicate event id in lineup", errors.New("id collision"), "id", ev.ID, "artist", ev.Artist)
		}
		byID[ev.ID] = ev
	}

	snap := &Snapshot{
		Events:    events,
		Schedules: schedules,
		ByID:      byID,
		LoadedAt:  time.Now(),
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Reload loads the raw records, builds the event model and the day
// schedules, and swaps them into the store in one step.
func Reload(ctx context.Context, l *Loader, s *Store, cfg *config.Config) error {
	raw, err := l.Load(ctx)
	if err != nil {
		return err
	}

	events, err := lineup.BuildEvents(raw, lineup.Options{
		UTCOffsetHours: cfg.UTCOffsetHours,
		GridStartHour:  cfg.GridStartHour,
		Strict:         cfg.StrictIngest,
	})
	if err != nil {
		return err
	}

	schedules := lineup.BuildSchedules(events, cfg.Days, cfg.StagePriority)
	s.swap(events, schedules)

	appLog.Info("lineup model rebuilt",
		"raw_records", len(raw),
		"events", len(events),
		"days", len(schedules),
	)
	return nil
}
