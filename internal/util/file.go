package util

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MakeAttachmentFileName builds the object base name for an uploaded
// attachment: "<epoch-ms>-<uploader-uid>-<original-name>".
// Example for "foto.jpg": "1709290454301-u42-foto.jpg"
func MakeAttachmentFileName(userID, fileName string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), userID, filepath.Base(fileName))
}

func GetTempDir() string {
	return filepath.Join(os.TempDir(), "giornale")
}

func CreateTemp(pattern string) (*os.File, error) {
	tempDir := GetTempDir()
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return os.CreateTemp(tempDir, pattern)
}
