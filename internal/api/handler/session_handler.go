package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go-dashboard-wizard/internal/model"
	"go-dashboard-wizard/internal/session"
	"go-dashboard-wizard/internal/store"
)

// maxUploadBytes caps how much file data one upload may carry.
const maxUploadBytes = 32 << 20

var manager *session.Manager

// Setup injects the session manager used by all handlers.
func Setup(m *session.Manager) {
	manager = m
}

// sessionID extracts the session ID segment from
// /api/v1/sessions/{id}[/suffix...].
func sessionID(r *http.Request) string {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 4 {
		return ""
	}
	return parts[3]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps session-layer errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrBusy):
		status = http.StatusConflict
	case errors.Is(err, session.ErrInstructionsRequired),
		errors.Is(err, session.ErrNoUpload),
		errors.Is(err, session.ErrNotCleaned):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]interface{}{"error": err.Error()})
}

// CreateSession starts a new wizard session
// @Summary Create a new session
// @Description Start a new wizard session at the upload step
// @Tags sessions
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Session created"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions [post]
func CreateSession(w http.ResponseWriter, r *http.Request) {
	snap, err := manager.Create()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// ListSessions retrieves all wizard sessions
// @Summary List all sessions
// @Description Get all wizard sessions with their step and status
// @Tags sessions
// @Produce json
// @Success 200 {array} map[string]interface{} "List of sessions"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions [get]
func ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := manager.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// GetSession retrieves one session's state
// @Summary Get session
// @Description Retrieve the live state of one wizard session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Session state"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id} [get]
func GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := manager.Get(sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DeleteSession removes a session and its artifacts
// @Summary Delete session
// @Description Delete a session and all its stored data and files
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Session deleted"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id} [delete]
func DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if err := manager.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Session deleted",
		"id":      id,
	})
}

// UploadFile ingests a tabular file into a session
// @Summary Upload a file
// @Description Upload a .csv, .tsv, .txt or .json file; it is normalized to delimited text
// @Tags wizard
// @Accept octet-stream
// @Produce json
// @Param id path string true "Session ID"
// @Param filename query string true "Original file name"
// @Success 200 {object} map[string]interface{} "Upload accepted"
// @Failure 400 {object} map[string]interface{} "Unsupported or corrupt file"
// @Failure 413 {object} map[string]interface{} "Upload too large"
// @Router /sessions/{id}/upload [post]
func UploadFile(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("filename")
	if fileName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "filename query parameter is required"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": fmt.Sprintf("failed to read upload: %v", err)})
		return
	}
	if len(data) > maxUploadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]interface{}{"error": "upload exceeds the 32 MiB limit"})
		return
	}

	snap, err := manager.Upload(sessionID(r), fileName, data)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrBusy) {
			writeError(w, err)
			return
		}
		// Ingestion problems are the user's file, not our server.
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type instructionsPayload struct {
	Instructions string `json:"instructions"`
}

// CleanData starts an AI cleaning run
// @Summary Clean the uploaded data
// @Description Ask the AI service to clean the uploaded data; poll the session for the result
// @Tags wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body handler.instructionsPayload true "Cleaning instructions"
// @Success 202 {object} map[string]interface{} "Cleaning started"
// @Failure 400 {object} map[string]interface{} "Missing instructions or upload"
// @Failure 409 {object} map[string]interface{} "A cleaning run is already in flight"
// @Router /sessions/{id}/clean [post]
func CleanData(w http.ResponseWriter, r *http.Request) {
	var payload instructionsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Invalid JSON payload"})
		return
	}

	snap, err := manager.Clean(sessionID(r), payload.Instructions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, snap)
}

// GetChangeLog lists the rows removed by the current cleaning run
// @Summary Get the change log
// @Description Rows the AI removed, each with its reason and a durable restore ID
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Change log"
// @Failure 400 {object} map[string]interface{} "No cleaning run has completed"
// @Router /sessions/{id}/changelog [get]
func GetChangeLog(w http.ResponseWriter, r *http.Request) {
	cl, err := manager.ChangeLogView(sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary":     cl.Summary,
		"removedRows": cl.Removed,
		"count":       len(cl.Removed),
	})
}

type restorePayload struct {
	ID string `json:"id"`
}

// RestoreRow moves one removed row back into the cleaned data
// @Summary Restore a removed row
// @Description Restore a row by its durable ID; the row is appended to the cleaned data
// @Tags wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body handler.restorePayload true "Removed-row ID"
// @Success 200 {object} map[string]interface{} "Session state after restore"
// @Failure 400 {object} map[string]interface{} "No cleaning run has completed"
// @Router /sessions/{id}/restore [post]
func RestoreRow(w http.ResponseWriter, r *http.Request) {
	var payload restorePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Invalid JSON payload"})
		return
	}

	snap, restored, err := manager.Restore(sessionID(r), payload.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"restored": restored,
		"session":  snap,
	})
}

// UndoEdit steps the review history back one snapshot
// @Summary Undo
// @Description Undo the most recent restore; a no-op when there is nothing to undo
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Session state after undo"
// @Router /sessions/{id}/undo [post]
func UndoEdit(w http.ResponseWriter, r *http.Request) {
	snap, moved, err := manager.Undo(sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"moved":   moved,
		"session": snap,
	})
}

// RedoEdit reapplies the last undone edit
// @Summary Redo
// @Description Redo the most recently undone restore; a no-op when there is nothing to redo
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Session state after redo"
// @Router /sessions/{id}/redo [post]
func RedoEdit(w http.ResponseWriter, r *http.Request) {
	snap, moved, err := manager.Redo(sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"moved":   moved,
		"session": snap,
	})
}

// GetFilters returns the filterable columns and their value domains
// @Summary Get filter domains
// @Description Filterable columns of the cleaned data with their distinct values
// @Tags dashboard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Filterable columns"
// @Failure 400 {object} map[string]interface{} "No cleaning run has completed"
// @Router /sessions/{id}/filters [get]
func GetFilters(w http.ResponseWriter, r *http.Request) {
	domains, err := manager.FilterDomains(sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"columns": domains,
		"count":   len(domains),
	})
}

// SetFilters replaces the filter selection
// @Summary Set filters
// @Description Replace the per-column value selection; the view recomputes and pagination resets
// @Tags dashboard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body model.FilterSelection true "Per-column selected values"
// @Success 200 {object} map[string]interface{} "First page of the filtered view"
// @Failure 400 {object} map[string]interface{} "No cleaning run has completed"
// @Router /sessions/{id}/filters [put]
func SetFilters(w http.ResponseWriter, r *http.Request) {
	var sel model.FilterSelection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Invalid JSON payload"})
		return
	}

	page, err := manager.SetFilters(sessionID(r), sel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetRows returns the current page of the filtered view
// @Summary Get rows
// @Description Current page of the filtered dataset, with pagination metadata
// @Tags dashboard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Page of rows"
// @Router /sessions/{id}/rows [get]
func GetRows(w http.ResponseWriter, r *http.Request) {
	page, err := manager.Rows(sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// NextPage advances to the next page, clamped at the last
// @Summary Next page
// @Tags dashboard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Page of rows"
// @Router /sessions/{id}/rows/next [post]
func NextPage(w http.ResponseWriter, r *http.Request) {
	page, err := manager.NextPage(sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// PreviousPage steps back one page, clamped at the first
// @Summary Previous page
// @Tags dashboard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Page of rows"
// @Router /sessions/{id}/rows/previous [post]
func PreviousPage(w http.ResponseWriter, r *http.Request) {
	page, err := manager.PrevPage(sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GenerateDashboard starts AI chart-config generation
// @Summary Generate dashboard
// @Description Ask the AI service to propose chart configurations; poll the session for the result
// @Tags dashboard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body handler.instructionsPayload true "Dashboard instructions"
// @Success 202 {object} map[string]interface{} "Generation started"
// @Failure 400 {object} map[string]interface{} "Missing instructions or cleaning run"
// @Failure 409 {object} map[string]interface{} "A generation run is already in flight"
// @Router /sessions/{id}/dashboard [post]
func GenerateDashboard(w http.ResponseWriter, r *http.Request) {
	var payload instructionsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Invalid JSON payload"})
		return
	}

	snap, err := manager.GenerateDashboard(sessionID(r), payload.Instructions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, snap)
}

// GetDashboard returns the chart configurations plus the filtered dataset
// @Summary Get dashboard
// @Description Chart configurations and the currently filtered dataset for rendering
// @Tags dashboard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Dashboard payload"
// @Router /sessions/{id}/dashboard [get]
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := manager.DashboardView(sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// ExportCSV downloads the filtered view as a CSV file
// @Summary Export CSV
// @Description Download the currently filtered dataset as delimited text
// @Tags dashboard
// @Produce text/csv
// @Param id path string true "Session ID"
// @Success 200 {string} string "CSV text"
// @Router /sessions/{id}/export [get]
func ExportCSV(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	out, err := manager.ExportCSV(id)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", id))
	w.Header().Set("Content-Type", "text/csv")
	w.Write([]byte(out))
}

// GetSessionLogs returns the audit trail for a session
// @Summary Get session logs
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param limit query int false "Max entries (default 100)"
// @Success 200 {object} map[string]interface{} "Log entries"
// @Router /sessions/{id}/logs [get]
func GetSessionLogs(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		fmt.Sscanf(limitStr, "%d", &limit)
		if limit <= 0 {
			limit = 100
		}
	}

	logs, err := store.GetSessionLogs(id, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": id,
		"logs":       logs,
		"count":      len(logs),
		"limit":      limit,
	})
}

// GetSessionErrors returns recorded errors for a session
// @Summary Get session errors
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Errors"
// @Router /sessions/{id}/errors [get]
func GetSessionErrors(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	errs, err := store.GetSessionErrors(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": id,
		"errors":     errs,
		"count":      len(errs),
	})
}
