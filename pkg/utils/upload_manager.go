package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UploadManager handles per-session file organization and path management
type UploadManager struct {
	BaseDir string
}

// NewUploadManager creates a new upload manager
func NewUploadManager(baseDir string) *UploadManager {
	return &UploadManager{
		BaseDir: baseDir,
	}
}

// CreateSessionDir creates a UUID-based directory for a session's files
func (um *UploadManager) CreateSessionDir(sessionID string) (string, error) {
	dir := filepath.Join(um.BaseDir, sessionID)

	// Create the directory if it doesn't exist
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create session directory: %w", err)
	}

	return dir, nil
}

// GetFilePath generates a full path for a session file
func (um *UploadManager) GetFilePath(sessionID, fileName string) (string, error) {
	dir, err := um.CreateSessionDir(sessionID)
	if err != nil {
		return "", err
	}

	// Clean the filename to remove any path separators
	cleanFileName := filepath.Base(fileName)

	return filepath.Join(dir, cleanFileName), nil
}

// FileType determines the file type based on extension
func FileType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return "csv"
	case ".tsv":
		return "tsv"
	case ".json":
		return "json"
	case ".txt":
		return "text"
	default:
		return "unknown"
	}
}

// RemoveSessionDir deletes everything stored for a session
func (um *UploadManager) RemoveSessionDir(sessionID string) error {
	return os.RemoveAll(filepath.Join(um.BaseDir, sessionID))
}

// EnsureBaseDirExists ensures the base upload directory exists
func (um *UploadManager) EnsureBaseDirExists() error {
	return os.MkdirAll(um.BaseDir, 0755)
}
