package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, ParseDuration("90s"))
	assert.Equal(t, 2*time.Minute, ParseDuration("2m"))

	// Empty and malformed inputs fall back to the default
	assert.Equal(t, 5*time.Minute, ParseDuration(""))
	assert.Equal(t, 5*time.Minute, ParseDuration("soon"))
}

func TestFileType(t *testing.T) {
	assert.Equal(t, "csv", FileType("data.csv"))
	assert.Equal(t, "csv", FileType("DATA.CSV"))
	assert.Equal(t, "tsv", FileType("data.tsv"))
	assert.Equal(t, "json", FileType("data.json"))
	assert.Equal(t, "text", FileType("notes.txt"))
	assert.Equal(t, "unknown", FileType("report.pdf"))
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, 42, ParseValue("42"))
	assert.Equal(t, 9.5, ParseValue(" 9.5 "))
	assert.Equal(t, "alice", ParseValue("alice"))
}
