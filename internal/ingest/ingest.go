// Package ingest normalizes uploaded payloads to delimited text with a
// header row before anything reaches the core. Delimited text, tab-
// separated text and JSON arrays of objects are accepted; everything else
// fails immediately with a descriptive message. Binary spreadsheet formats
// are out of scope.
package ingest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go-dashboard-wizard/internal/model"
	"go-dashboard-wizard/pkg/utils"
)

// Normalize converts an uploaded file into CSV text with a header row.
func Normalize(fileName string, data []byte) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", fmt.Errorf("uploaded file %q is empty", fileName)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return normalizeDelimited(data, ',')
	case ".tsv":
		return normalizeDelimited(data, '\t')
	case ".txt":
		// Plain text uploads are treated as comma-delimited.
		return normalizeDelimited(data, ',')
	case ".json":
		return normalizeJSON(data)
	default:
		return "", fmt.Errorf("unsupported file type %q: upload a .csv, .tsv, .txt or .json file", ext)
	}
}

// normalizeDelimited re-emits delimited text as clean CSV: headers trimmed
// and unquoted, every row padded to the header width.
func normalizeDelimited(data []byte, delim rune) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to parse delimited text: %w", err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("delimited file has no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = cleanHeader(h)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows[1:] {
		out := make([]string, len(headers))
		for i := range headers {
			if i < len(row) {
				out[i] = strings.TrimSpace(row[i])
			}
		}
		if err := writer.Write(out); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return buf.String(), writer.Error()
}

// normalizeJSON accepts only an array of flat objects.
func normalizeJSON(data []byte) (string, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("failed to decode JSON: %w", err)
	}

	items, ok := raw.([]interface{})
	if !ok {
		return "", fmt.Errorf("JSON upload must be an array of objects")
	}
	if len(items) == 0 {
		return "", fmt.Errorf("JSON array is empty")
	}

	// Header is the union of keys across all objects, in sorted order so
	// the output is deterministic.
	keySet := make(map[string]bool)
	records := make([]map[string]interface{}, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return "", fmt.Errorf("JSON array element %d is not an object", i)
		}
		for k := range obj {
			keySet[k] = true
		}
		records = append(records, obj)
	}

	headers := make([]string, 0, len(keySet))
	for k := range keySet {
		headers = append(headers, cleanHeader(k))
	}
	sort.Strings(headers)

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, obj := range records {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = utils.FormatCell(obj[h])
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return buf.String(), writer.Error()
}

// ParseCSV reads normalized delimited text back into records, re-typing
// cells the same way ingestion does.
func ParseCSV(text string) (model.Dataset, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV has no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = cleanHeader(h)
	}

	ds := make(model.Dataset, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(model.Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = utils.ParseValue(row[i])
			}
		}
		ds = append(ds, rec)
	}
	return ds, nil
}

// WriteCSV renders a dataset as CSV text with a deterministic header order
// taken from the first record's sorted keys.
func WriteCSV(ds model.Dataset) (string, error) {
	if len(ds) == 0 {
		return "", nil
	}

	headers := make([]string, 0, len(ds[0]))
	for k := range ds[0] {
		headers = append(headers, k)
	}
	sort.Strings(headers)

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, rec := range ds {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = utils.FormatCell(rec[h])
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return buf.String(), writer.Error()
}

// cleanHeader trims whitespace and strips stray quotes from a header cell.
func cleanHeader(h string) string {
	h = strings.TrimSpace(h)
	return strings.ReplaceAll(h, `"`, "")
}
