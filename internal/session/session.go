// Package session orchestrates the wizard: one Session per user walk
// through Upload -> Clean -> Dashboard. The session owns the history,
// filter and pagination engines; every mutation goes through the session
// mutex, so history operations are strictly ordered even though the HTTP
// layer is concurrent. Per-kind busy flags are the backpressure that
// stands in for the wizard's disabled buttons: a second cleaning or
// dashboard request while one is in flight is rejected, never queued.
package session

import (
	"errors"
	"sync"

	"go-dashboard-wizard/internal/filter"
	"go-dashboard-wizard/internal/history"
	"go-dashboard-wizard/internal/model"
	"go-dashboard-wizard/internal/paging"
)

// Session statuses surfaced to the UI.
const (
	StatusIdle            = "idle"
	StatusUploaded        = "uploaded"
	StatusCleaning        = "cleaning"
	StatusCleaned         = "cleaned"
	StatusCleanFailed     = "clean_failed"
	StatusCharting        = "generating_dashboard"
	StatusDashboardReady  = "dashboard_ready"
	StatusDashboardFailed = "dashboard_failed"
)

var (
	ErrNotFound             = errors.New("session not found")
	ErrBusy                 = errors.New("a request of this kind is already in flight")
	ErrNoUpload             = errors.New("no file has been uploaded")
	ErrNotCleaned           = errors.New("no cleaning run has completed")
	ErrInstructionsRequired = errors.New("instruction text is required")
)

// Session is the state of one wizard walk-through.
type Session struct {
	ID string

	mu        sync.Mutex
	step      model.Step
	status    string
	lastError string
	fileName  string
	rawText   string // normalized delimited text, the cleaning input

	hist    *history.History
	summary string // change-log summary of the current cleaning run

	filters  model.FilterSelection
	filtered model.Dataset // derived view over the present cleaned data
	pager    paging.Pager

	charts []model.ChartDescriptor

	cleaningBusy bool
	chartBusy    bool
}

func newSession(id string, pageSize int) *Session {
	return &Session{
		ID:     id,
		step:   model.StepUpload,
		status: StatusIdle,
		hist:   history.New(),
		pager:  paging.NewPager(pageSize),
	}
}

// recompute refreshes the derived filtered view from the present cleaned
// dataset and resets the pager. Called with the mutex held, whenever
// either the filter selection or the base dataset changed.
func (s *Session) recompute() {
	if !s.hist.Ready() {
		s.filtered = nil
		s.pager.Reset()
		return
	}
	s.filtered = filter.Apply(s.hist.Present().Cleaned, s.filters)
	s.pager.Reset()
}

// Snapshot is the read view of a session.
type Snapshot struct {
	ID           string `json:"id"`
	Step         string `json:"step"`
	Status       string `json:"status"`
	FileName     string `json:"filename,omitempty"`
	Error        string `json:"error,omitempty"`
	Summary      string `json:"summary,omitempty"`
	CleanedRows  int    `json:"cleanedRows"`
	RemovedRows  int    `json:"removedRows"`
	FilteredRows int    `json:"filteredRows"`
	CanUndo      bool   `json:"canUndo"`
	CanRedo      bool   `json:"canRedo"`
}

// snapshot builds the read view. Called with the mutex held.
func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		ID:       s.ID,
		Step:     string(s.step),
		Status:   s.status,
		FileName: s.fileName,
		Error:    s.lastError,
		Summary:  s.summary,
		CanUndo:  s.hist.CanUndo(),
		CanRedo:  s.hist.CanRedo(),
	}
	if s.hist.Ready() {
		present := s.hist.Present()
		snap.CleanedRows = len(present.Cleaned)
		snap.RemovedRows = len(present.Removed)
		snap.FilteredRows = len(s.filtered)
	}
	return snap
}

// RowsPage is one page of the filtered view plus pagination metadata.
type RowsPage struct {
	Rows       model.Dataset `json:"rows"`
	PageIndex  int           `json:"pageIndex"`
	PageCount  int           `json:"pageCount"`
	PageSize   int           `json:"pageSize"`
	TotalRows  int           `json:"totalRows"`
	FilteredOf int           `json:"filteredOf"` // size of the base cleaned dataset
}

// rowsPage slices the current page out of the filtered view. Called with
// the mutex held. An empty view yields an empty page, never an error.
func (s *Session) rowsPage() RowsPage {
	start, end := s.pager.Window(len(s.filtered))
	page := RowsPage{
		Rows:      s.filtered[start:end],
		PageIndex: s.pager.Index,
		PageCount: paging.Count(len(s.filtered), s.pager.Size),
		PageSize:  s.pager.Size,
		TotalRows: len(s.filtered),
	}
	if s.hist.Ready() {
		page.FilteredOf = len(s.hist.Present().Cleaned)
	}
	if page.Rows == nil {
		page.Rows = model.Dataset{}
	}
	return page
}

// Dashboard is the payload handed to the charting collaborator's renderer:
// the proposed chart configurations plus the currently *filtered* dataset.
type Dashboard struct {
	Charts []model.ChartDescriptor `json:"charts"`
	Data   model.Dataset           `json:"data"`
}
