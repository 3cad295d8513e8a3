package lineup

import (
	"sort"

	"github.com/lucianorarrua/cosquin-rock-lineup/internal/model"
)

// Default vertical range (in grid minutes) for a day with no events:
// 14:00 through midnight.
const (
	defaultStartMinute = 0
	defaultEndMinute   = 600
)

// BuildSchedules assembles one DaySchedule per configured festival day.
//
// Days with no events still get an entry (empty stage list, default
// minute range) so the grid renders a consistent set of tabs. Within a
// day, stages follow stagePriority; stage names not on the list sort
// after every known stage in the order they were first seen. Events in
// a stage column are stable-sorted by start minute.
func BuildSchedules(events []model.FestivalEvent, days []model.DayInfo, stagePriority []string) []model.DaySchedule {
	byDay := make(map[int][]model.FestivalEvent, len(days))
	for _, ev := range events {
		byDay[ev.Day] = append(byDay[ev.Day], ev)
	}

	schedules := make([]model.DaySchedule, 0, len(days))
	for _, day := range days {
		schedules = append(schedules, buildDay(day, byDay[day.Day], stagePriority))
	}
	return schedules
}

func buildDay(day model.DayInfo, events []model.FestivalEvent, stagePriority []string) model.DaySchedule {
	sched := model.DaySchedule{
		Day:         day.Day,
		Label:       day.Label,
		Date:        day.Date,
		Stages:      []model.StageColumn{},
		StartMinute: defaultStartMinute,
		EndMinute:   defaultEndMinute,
	}
	if len(events) == 0 {
		return sched
	}

	// Collect stage names in discovery order; unknown stages keep that
	// order among themselves after the curated ones.
	byStage := make(map[string][]model.FestivalEvent)
	names := make([]string, 0)
	for _, ev := range events {
		if _, seen := byStage[ev.Stage]; !seen {
			names = append(names, ev.Stage)
		}
		byStage[ev.Stage] = append(byStage[ev.Stage], ev)
	}

	rank := make(map[string]int, len(stagePriority))
	for i, name := range stagePriority {
		rank[name] = i
	}
	stageRank := func(name string) int {
		if r, ok := rank[name]; ok {
			return r
		}
		return len(stagePriority)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return stageRank(names[i]) < stageRank(names[j])
	})

	minStart, maxEnd := events[0].StartMinutes, events[0].EndMinutes

	for _, name := range names {
		column := byStage[name]
		sort.SliceStable(column, func(i, j int) bool {
			return column[i].StartMinutes < column[j].StartMinutes
		})
		for _, ev := range column {
			if ev.StartMinutes < minStart {
				minStart = ev.StartMinutes
			}
			if ev.EndMinutes > maxEnd {
				maxEnd = ev.EndMinutes
			}
		}
		sched.Stages = append(sched.Stages, model.StageColumn{Name: name, Events: column})
	}

	// Hour-align the vertical extent so gridlines land on full hours and
	// every event fits inside it.
	sched.StartMinute = floorHour(minStart)
	sched.EndMinute = ceilHour(maxEnd)

	return sched
}

func floorHour(minute int) int {
	if minute < 0 {
		// Should not happen for normalized events; clamp rather than
		// produce a gridline above the grid origin.
		return 0
	}
	return minute - minute%60
}

func ceilHour(minute int) int {
	if minute%60 == 0 {
		return minute
	}
	return minute + (60 - minute%60)
}
