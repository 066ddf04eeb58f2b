package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"go-dashboard-wizard/internal/model"
)

// wireCleaning is the JSON shape the cleaning prompt asks the model for.
type wireCleaning struct {
	CleanedData model.Dataset `json:"cleaned_data"`
	ChangeLog   struct {
		Summary     string `json:"summary"`
		RemovedRows []struct {
			Row    model.Record `json:"row"`
			Reason string       `json:"reason"`
		} `json:"removed_rows"`
	} `json:"change_log"`
}

// CleanDataset sends raw delimited text plus the user's instructions to the
// service and interprets the reply as a cleaning result. Each removed row
// gets a durable uuid at this point, so later restores can address it by
// identity instead of list position. No partial result is ever returned:
// either the full structure decodes, or the caller gets an error.
func (c *Client) CleanDataset(ctx context.Context, rawText, instructions string) (*model.CleaningResult, error) {
	if strings.TrimSpace(instructions) == "" {
		return nil, errors.New("cleaning instructions are required")
	}
	if strings.TrimSpace(rawText) == "" {
		return nil, errors.New("no data to clean")
	}

	resp, err := c.Generate(ctx, GenerateRequest{
		Messages: []Message{
			{Role: "system", Content: cleaningSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Instructions: %s\n\nData (CSV):\n%s", instructions, rawText)},
		},
	})
	if err != nil {
		return nil, err
	}
	text, err := content(resp)
	if err != nil {
		return nil, err
	}

	var wire wireCleaning
	if err := json.Unmarshal([]byte(extractJSON(text)), &wire); err != nil {
		return nil, &MalformedResultError{What: "cleaning result", Err: err}
	}
	if wire.CleanedData == nil {
		return nil, &MalformedResultError{What: "cleaning result", Err: errors.New("missing cleaned_data")}
	}

	result := &model.CleaningResult{
		Cleaned: wire.CleanedData,
		ChangeLog: model.ChangeLog{
			Summary: wire.ChangeLog.Summary,
			Removed: make([]model.RemovedRow, 0, len(wire.ChangeLog.RemovedRows)),
		},
	}
	for _, rr := range wire.ChangeLog.RemovedRows {
		result.ChangeLog.Removed = append(result.ChangeLog.Removed, model.RemovedRow{
			ID:     uuid.New().String(),
			Row:    rr.Row,
			Reason: rr.Reason,
		})
	}
	return result, nil
}

// GenerateChartConfigs asks the service for dashboard chart proposals over
// the (already cleaned) dataset. The descriptors are pass-through
// configuration: decoded, never validated.
func (c *Client) GenerateChartConfigs(ctx context.Context, ds model.Dataset, instructions string) ([]model.ChartDescriptor, error) {
	if strings.TrimSpace(instructions) == "" {
		return nil, errors.New("dashboard instructions are required")
	}

	sample, err := json.Marshal(ds)
	if err != nil {
		return nil, fmt.Errorf("marshal dataset: %w", err)
	}

	resp, err := c.Generate(ctx, GenerateRequest{
		Messages: []Message{
			{Role: "system", Content: chartSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Instructions: %s\n\nDataset (JSON):\n%s", instructions, sample)},
		},
	})
	if err != nil {
		return nil, err
	}
	text, err := content(resp)
	if err != nil {
		return nil, err
	}

	var charts []model.ChartDescriptor
	if err := json.Unmarshal([]byte(extractJSON(text)), &charts); err != nil {
		return nil, &MalformedResultError{What: "chart configuration", Err: err}
	}
	return charts, nil
}

const cleaningSystemPrompt = `You are a data cleaning assistant. Reply with only a JSON object of the form ` +
	`{"cleaned_data": [...], "change_log": {"summary": "...", "removed_rows": [{"row": {...}, "reason": "..."}]}}. ` +
	`cleaned_data holds the rows you kept, removed_rows the rows you dropped with a one-line reason each.`

const chartSystemPrompt = `You are a dashboard assistant. Reply with only a JSON array of chart configurations: ` +
	`[{"title": "...", "chartType": "bar|line|pie|area|scatter", "dataKey": "<category column>", ` +
	`"valueKeys": ["<numeric column>", ...], "description": "..."}].`

// extractJSON strips a markdown code fence when the model wraps its reply
// in one.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
