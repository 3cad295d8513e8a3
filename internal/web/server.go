// Package web exposes the lineup grid over HTTP: the schedule API, the
// selection/share endpoints and the embedded static UI. The server
// itself is stateless with respect to selections; every request carries
// the full selection state in its query string and gets the canonical
// re-encoding back.
package web

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lucianorarrua/cosquin-rock-lineup/internal/config"
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/dataset"
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/ics"
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/layout"
	appLog "github.com/lucianorarrua/cosquin-rock-lineup/internal/log"
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/model"
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/selection"
)

// Server provides the HTTP API for the lineup grid.
type Server struct {
	cfg       *config.Config
	store     *dataset.Store
	projector layout.Projector
	router    *mux.Router
}

// NewServer constructs a Server around the given config and dataset
// store.
func NewServer(cfg *config.Config, store *dataset.Store) *Server {
	s := &Server{
		cfg:   cfg,
		store: store,
		projector: layout.Projector{
			PixelsPerMinute: cfg.PixelsPerMinute,
			MinEventHeight:  cfg.MinEventHeight,
			GridStartHour:   cfg.GridStartHour,
		},
		router: mux.NewRouter(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/lineup", s.handleLineup).Methods(http.MethodGet)
	s.router.HandleFunc("/api/schedule", s.handleSchedule).Methods(http.MethodGet)
	s.router.HandleFunc("/api/selection/toggle", s.handleToggle).Methods(http.MethodPost)
	s.router.HandleFunc("/api/selection/edit", s.handleSwitchToEdit).Methods(http.MethodPost)
	s.router.HandleFunc("/api/selection/share", s.handleShare).Methods(http.MethodGet)
	s.router.HandleFunc("/calendar.ics", s.handleCalendar).Methods(http.MethodGet)

	// Everything else is the embedded static UI.
	s.router.PathPrefix("/").Handler(s.staticFileServer())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// eventDTO is a JSON-friendly event enriched with pixel geometry and
// the per-request selection flag.
type eventDTO struct {
	model.FestivalEvent
	Top      int  `json:"top"`
	Height   int  `json:"height"`
	Selected bool `json:"selected"`
}

type stageDTO struct {
	Name   string     `json:"name"`
	Events []eventDTO `json:"events"`
}

type dayDTO struct {
	Day         int               `json:"day"`
	Label       string            `json:"label"`
	Date        string            `json:"date"`
	StartMinute int               `json:"startMinute"`
	EndMinute   int               `json:"endMinute"`
	HeightPx    int               `json:"heightPx"`
	HourLines   []layout.HourLine `json:"hourLines"`
	Stages      []stageDTO        `json:"stages"`
}

type selectionDTO struct {
	IDs              []string `json:"ids"`
	ReadOnly         bool     `json:"readOnly"`
	ShowOnlySelected bool     `json:"showOnlySelected"`
	FilterActive     bool     `json:"filterActive"`
}

type scheduleResponse struct {
	Days      []dayDTO     `json:"days"`
	Selection selectionDTO `json:"selection"`
	// Query is the canonical encoding of the selection state; clients
	// write it to the address bar with history.replaceState so toggles
	// do not pollute back-navigation.
	Query string `json:"query"`
}

// handleLineup returns the full grid with geometry and no selection
// applied.
func (s *Server) handleLineup(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()
	resp := scheduleResponse{
		Days:      s.projectDays(snap.Schedules, selection.NewState()),
		Selection: selectionToDTO(selection.NewState()),
		Query:     "",
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSchedule returns the grid with the request's selection state
// applied: selected flags, the agenda filter when active, and the
// canonical query string for the address bar.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	state := selection.Decode(r.URL.Query())
	snap := s.store.Snapshot()

	resp := scheduleResponse{
		Days:      s.projectDays(snap.Schedules, state),
		Selection: selectionToDTO(state),
		Query:     selection.EncodeQuery(state),
	}
	writeJSON(w, http.StatusOK, resp)
}

type toggleResponse struct {
	Applied   bool         `json:"applied"`
	Selection selectionDTO `json:"selection"`
	Query     string       `json:"query"`
}

// handleToggle flips one event in the selection carried by the query
// string and returns the re-encoded state. In read-only (shared) view
// the toggle is a no-op, not an error. The mutation is always applied
// before re-encoding, so the returned query never reflects a stale
// state.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id parameter")
		return
	}

	state := selection.Decode(q)
	applied := state.Toggle(id)

	writeJSON(w, http.StatusOK, toggleResponse{
		Applied:   applied,
		Selection: selectionToDTO(state),
		Query:     selection.EncodeQuery(state),
	})
}

// handleSwitchToEdit leaves shared (read-only) view while preserving
// the selection. This is the only way out of read-only mode.
func (s *Server) handleSwitchToEdit(w http.ResponseWriter, r *http.Request) {
	state := selection.Decode(r.URL.Query())
	state.SwitchToEdit()

	writeJSON(w, http.StatusOK, toggleResponse{
		Applied:   true,
		Selection: selectionToDTO(state),
		Query:     selection.EncodeQuery(state),
	})
}

type shareResponse struct {
	Query string `json:"query"`
	Path  string `json:"path"`
}

// handleShare returns the read-only share link for the selection in
// the query string.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	state := selection.Decode(r.URL.Query())

	query := selection.ShareQuery(state)
	writeJSON(w, http.StatusOK, shareResponse{
		Query: query,
		Path:  "/?" + query,
	})
}

// handleCalendar exports the selected events as an iCalendar file.
// An empty selection is a no-op (204), not an error.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	state := selection.Decode(r.URL.Query())
	if state.Len() == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	snap := s.store.Snapshot()
	events := make([]model.FestivalEvent, 0, state.Len())
	for _, id := range state.Selected() {
		if ev, ok := snap.ByID[id]; ok {
			events = append(events, ev)
		}
	}
	if len(events) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	body := ics.Generate(events, "Mi agenda Cosquín Rock")

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="cosquin-rock-agenda.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// projectDays converts day schedules into render-ready DTOs, applying
// the agenda filter when it is in effect.
func (s *Server) projectDays(schedules []model.DaySchedule, state *selection.State) []dayDTO {
	filter := state.FilterActive()

	days := make([]dayDTO, 0, len(schedules))
	for _, day := range schedules {
		dto := dayDTO{
			Day:         day.Day,
			Label:       day.Label,
			Date:        day.Date,
			StartMinute: day.StartMinute,
			EndMinute:   day.EndMinute,
			HeightPx:    (day.EndMinute - day.StartMinute) * s.projector.PixelsPerMinute,
			HourLines:   s.projector.HourLines(day),
			Stages:      []stageDTO{},
		}

		for _, stage := range day.Stages {
			col := stageDTO{Name: stage.Name, Events: []eventDTO{}}
			for _, ev := range stage.Events {
				selected := state.Has(ev.ID)
				if filter && !selected {
					continue
				}
				col.Events = append(col.Events, eventDTO{
					FestivalEvent: ev,
					Top:           s.projector.Top(ev, day.StartMinute),
					Height:        s.projector.Height(ev),
					Selected:      selected,
				})
			}
			if filter && len(col.Events) == 0 {
				continue
			}
			dto.Stages = append(dto.Stages, col)
		}

		days = append(days, dto)
	}
	return days
}

func selectionToDTO(state *selection.State) selectionDTO {
	return selectionDTO{
		IDs:              state.Selected(),
		ReadOnly:         state.ReadOnly(),
		ShowOnlySelected: state.ShowOnlySelected(),
		FilterActive:     state.FilterActive(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
