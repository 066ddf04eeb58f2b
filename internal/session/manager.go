package session

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-dashboard-wizard/internal/filter"
	"go-dashboard-wizard/internal/history"
	"go-dashboard-wizard/internal/ingest"
	"go-dashboard-wizard/internal/model"
	"go-dashboard-wizard/internal/store"
	"go-dashboard-wizard/pkg/utils"
)

// Service is the external AI collaborator as the session layer sees it.
// Implemented by ai.Client; faked in tests.
type Service interface {
	CleanDataset(ctx context.Context, rawText, instructions string) (*model.CleaningResult, error)
	GenerateChartConfigs(ctx context.Context, ds model.Dataset, instructions string) ([]model.ChartDescriptor, error)
}

// Manager owns all live sessions and drives the two asynchronous
// collaborator calls in the background, committing results only on full
// success.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	svc      Service
	uploads  *utils.UploadManager
	pageSize int
	log      *zap.SugaredLogger
}

// NewManager wires the session layer together.
func NewManager(svc Service, uploads *utils.UploadManager, pageSize int, log *zap.SugaredLogger) *Manager {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		svc:      svc,
		uploads:  uploads,
		pageSize: pageSize,
		log:      log,
	}
}

// Create starts a new wizard session.
func (m *Manager) Create() (Snapshot, error) {
	s := newSession(uuid.New().String(), m.pageSize)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	if err := store.SaveSession(s.ID, model.StepUpload); err != nil {
		return Snapshot{}, err
	}
	m.log.Infow("session created", "session", s.ID)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

func (m *Manager) get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Get returns the read view of one session.
func (m *Manager) Get(id string) (Snapshot, error) {
	s, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Delete removes a session, its stored rows and its uploaded files.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	if m.uploads != nil {
		if err := m.uploads.RemoveSessionDir(id); err != nil {
			m.log.Warnw("failed to remove session files", "session", id, "error", err)
		}
	}
	return store.DeleteSession(id)
}

// Upload normalizes an uploaded file to delimited text and resets the
// session around it: any previous cleaning run, filters, charts and
// history are discarded.
func (m *Manager) Upload(id, fileName string, data []byte) (Snapshot, error) {
	s, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}

	text, err := ingest.Normalize(fileName, data)
	if err != nil {
		store.SaveSessionError(id, err)
		return Snapshot{}, err
	}

	s.mu.Lock()
	if s.cleaningBusy || s.chartBusy {
		s.mu.Unlock()
		return Snapshot{}, ErrBusy
	}
	s.step = model.StepUpload
	s.status = StatusUploaded
	s.fileName = fileName
	s.rawText = text
	s.lastError = ""
	s.summary = ""
	s.filters = nil
	s.charts = nil
	s.hist = history.New()
	s.recompute()
	snap := s.snapshot()
	s.mu.Unlock()

	if m.uploads != nil {
		if path, err := m.uploads.GetFilePath(id, "normalized.csv"); err == nil {
			if werr := os.WriteFile(path, []byte(text), 0o644); werr != nil {
				m.log.Warnw("failed to persist normalized upload", "session", id, "error", werr)
			}
		}
	}
	store.UpdateSession(id, model.StepUpload, StatusUploaded, fileName)
	store.SaveSessionLog(id, "upload", "info", "file normalized", map[string]interface{}{
		"filename": fileName,
		"type":     utils.FileType(fileName),
		"bytes":    len(data),
	})
	m.log.Infow("upload normalized", "session", id,
		"filename", fileName, "type", utils.FileType(fileName))
	return snap, nil
}

// Clean starts a cleaning run in the background. The caller gets an
// immediate snapshot with status "cleaning"; the result is committed (or
// the failure recorded) when the collaborator answers. A second Clean
// while one runs returns ErrBusy. The run is detached from the caller:
// once accepted it always finishes or fails on its own terms, bounded
// only by the AI client's timeout.
func (m *Manager) Clean(id, instructions string) (Snapshot, error) {
	if strings.TrimSpace(instructions) == "" {
		return Snapshot{}, ErrInstructionsRequired
	}
	s, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	if s.rawText == "" {
		s.mu.Unlock()
		return Snapshot{}, ErrNoUpload
	}
	if s.cleaningBusy {
		s.mu.Unlock()
		return Snapshot{}, ErrBusy
	}
	s.cleaningBusy = true
	s.status = StatusCleaning
	s.lastError = ""
	rawText := s.rawText
	snap := s.snapshot()
	s.mu.Unlock()

	store.UpdateSessionStatus(id, StatusCleaning)
	store.SaveSessionLog(id, "cleaning", "info", "cleaning started", map[string]interface{}{
		"instructions_len": len(instructions),
	})

	go func() {
		result, err := m.svc.CleanDataset(context.Background(), rawText, instructions)

		s.mu.Lock()
		s.cleaningBusy = false
		if err != nil {
			// No partial state: the previous history (if any) stays intact.
			s.status = StatusCleanFailed
			s.lastError = err.Error()
			s.mu.Unlock()
			store.UpdateSessionStatus(id, StatusCleanFailed)
			store.SaveSessionError(id, err)
			m.log.Warnw("cleaning failed", "session", id, "error", err)
			return
		}

		// One history lifetime per cleaning run.
		s.hist.Init(model.CleaningState{
			Cleaned: result.Cleaned,
			Removed: result.ChangeLog.Removed,
		})
		s.summary = result.ChangeLog.Summary
		s.filters = nil
		s.charts = nil
		s.step = model.StepClean
		s.status = StatusCleaned
		s.recompute()
		present := s.hist.Present()
		s.mu.Unlock()

		store.UpdateSession(id, model.StepClean, StatusCleaned, "")
		store.SaveCleaningRun(id, result.ChangeLog.Summary, present)
		store.SaveSessionLog(id, "cleaning", "info", "cleaning completed", map[string]interface{}{
			"cleaned_rows": len(present.Cleaned),
			"removed_rows": len(present.Removed),
		})
		m.log.Infow("cleaning completed", "session", id,
			"cleaned", len(present.Cleaned), "removed", len(present.Removed))
	}()

	return snap, nil
}

// ChangeLogView lists the rows the current cleaning run removed, each with
// its durable restore ID.
func (m *Manager) ChangeLogView(id string) (model.ChangeLog, error) {
	s, err := m.get(id)
	if err != nil {
		return model.ChangeLog{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hist.Ready() {
		return model.ChangeLog{}, ErrNotCleaned
	}
	removed := s.hist.Present().Removed
	out := model.ChangeLog{Summary: s.summary, Removed: make([]model.RemovedRow, len(removed))}
	copy(out.Removed, removed)
	return out, nil
}

// Restore moves one removed row (addressed by its durable ID) back into
// the cleaned dataset as a new history edit. An unknown ID is a no-op
// reported through the returned flag.
func (m *Manager) Restore(id, rowID string) (Snapshot, bool, error) {
	s, err := m.get(id)
	if err != nil {
		return Snapshot{}, false, err
	}

	s.mu.Lock()
	if !s.hist.Ready() {
		s.mu.Unlock()
		return Snapshot{}, false, ErrNotCleaned
	}
	next, ok := history.RestoreState(s.hist.Present(), rowID)
	if ok {
		s.hist.Apply(next)
		s.recompute()
	}
	snap := s.snapshot()
	summary := s.summary
	var present model.CleaningState
	if ok {
		present = s.hist.Present()
	}
	s.mu.Unlock()

	if ok {
		store.SaveCleaningRun(id, summary, present)
		store.SaveSessionLog(id, "review", "info", "row restored", map[string]interface{}{
			"row_id": rowID,
		})
	}
	return snap, ok, nil
}

// Undo steps the history back one snapshot; a no-op on an empty past.
func (m *Manager) Undo(id string) (Snapshot, bool, error) {
	return m.navigate(id, "undo")
}

// Redo reapplies the last undone snapshot; a no-op on an empty future.
func (m *Manager) Redo(id string) (Snapshot, bool, error) {
	return m.navigate(id, "redo")
}

func (m *Manager) navigate(id, direction string) (Snapshot, bool, error) {
	s, err := m.get(id)
	if err != nil {
		return Snapshot{}, false, err
	}

	s.mu.Lock()
	var moved bool
	if direction == "undo" {
		moved = s.hist.Undo()
	} else {
		moved = s.hist.Redo()
	}
	if moved {
		s.recompute()
	}
	snap := s.snapshot()
	summary := s.summary
	var present model.CleaningState
	if moved {
		present = s.hist.Present()
	}
	s.mu.Unlock()

	if moved {
		store.SaveCleaningRun(id, summary, present)
		store.SaveSessionLog(id, "review", "info", direction, nil)
	}
	return snap, moved, nil
}

// FilterDomains returns the filterable columns of the present cleaned
// dataset with their distinct-value domains.
func (m *Manager) FilterDomains(id string) ([]model.ColumnDomain, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hist.Ready() {
		return nil, ErrNotCleaned
	}
	return filter.Columns(s.hist.Present().Cleaned), nil
}

// SetFilters replaces the filter selection, recomputes the filtered view
// and resets pagination to the first page.
func (m *Manager) SetFilters(id string, sel model.FilterSelection) (RowsPage, error) {
	s, err := m.get(id)
	if err != nil {
		return RowsPage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hist.Ready() {
		return RowsPage{}, ErrNotCleaned
	}
	s.filters = sel
	s.recompute()
	return s.rowsPage(), nil
}

// Rows returns the current page of the filtered view.
func (m *Manager) Rows(id string) (RowsPage, error) {
	s, err := m.get(id)
	if err != nil {
		return RowsPage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rowsPage(), nil
}

// NextPage advances one page, clamped at the last page.
func (m *Manager) NextPage(id string) (RowsPage, error) {
	s, err := m.get(id)
	if err != nil {
		return RowsPage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pager.Next(len(s.filtered))
	return s.rowsPage(), nil
}

// PrevPage steps back one page, clamped at the first.
func (m *Manager) PrevPage(id string) (RowsPage, error) {
	s, err := m.get(id)
	if err != nil {
		return RowsPage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pager.Prev()
	return s.rowsPage(), nil
}

// GenerateDashboard asks the collaborator for chart proposals over the
// present cleaned dataset, in the background. Mirrors Clean: busy flag,
// commit on success only, run detached from the caller.
func (m *Manager) GenerateDashboard(id, instructions string) (Snapshot, error) {
	if strings.TrimSpace(instructions) == "" {
		return Snapshot{}, ErrInstructionsRequired
	}
	s, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	if !s.hist.Ready() {
		s.mu.Unlock()
		return Snapshot{}, ErrNotCleaned
	}
	if s.chartBusy {
		s.mu.Unlock()
		return Snapshot{}, ErrBusy
	}
	s.chartBusy = true
	s.status = StatusCharting
	s.lastError = ""
	dataset := s.hist.Present().Cleaned.Clone()
	snap := s.snapshot()
	s.mu.Unlock()

	store.UpdateSessionStatus(id, StatusCharting)
	store.SaveSessionLog(id, "dashboard", "info", "chart generation started", map[string]interface{}{
		"rows": len(dataset),
	})

	go func() {
		charts, err := m.svc.GenerateChartConfigs(context.Background(), dataset, instructions)

		s.mu.Lock()
		s.chartBusy = false
		if err != nil {
			s.status = StatusDashboardFailed
			s.lastError = err.Error()
			s.mu.Unlock()
			store.UpdateSessionStatus(id, StatusDashboardFailed)
			store.SaveSessionError(id, err)
			m.log.Warnw("chart generation failed", "session", id, "error", err)
			return
		}
		s.charts = charts
		s.step = model.StepDashboard
		s.status = StatusDashboardReady
		s.mu.Unlock()

		store.UpdateSession(id, model.StepDashboard, StatusDashboardReady, "")
		store.SaveSessionLog(id, "dashboard", "info", "chart generation completed", map[string]interface{}{
			"charts": len(charts),
		})
		m.log.Infow("dashboard ready", "session", id, "charts", len(charts))
	}()

	return snap, nil
}

// DashboardView returns the chart configurations plus the currently
// filtered (never the base) dataset. An empty dataset renders an empty
// dashboard, not an error.
func (m *Manager) DashboardView(id string) (Dashboard, error) {
	s, err := m.get(id)
	if err != nil {
		return Dashboard{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := Dashboard{
		Charts: append([]model.ChartDescriptor(nil), s.charts...),
		Data:   s.filtered.Clone(),
	}
	if out.Charts == nil {
		out.Charts = []model.ChartDescriptor{}
	}
	if out.Data == nil {
		out.Data = model.Dataset{}
	}
	return out, nil
}

// ExportCSV renders the current filtered view as delimited text for
// download.
func (m *Manager) ExportCSV(id string) (string, error) {
	s, err := m.get(id)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	view := s.filtered.Clone()
	s.mu.Unlock()
	return ingest.WriteCSV(view)
}

// List returns stored metadata for all sessions.
func (m *Manager) List() ([]map[string]interface{}, error) {
	return store.ListSessions()
}
