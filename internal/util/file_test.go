package util

import (
	"strings"
	"testing"
)

func TestMakeAttachmentFileName(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		fileName string
		wantEnd  string
	}{
		{"plain name", "u42", "foto.jpg", "-u42-foto.jpg"},
		{"path is stripped to base", "u42", "../../etc/passwd", "-u42-passwd"},
		{"name with spaces", "abc", "verbale finale.pdf", "-abc-verbale finale.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeAttachmentFileName(tt.userID, tt.fileName)
			if !strings.HasSuffix(got, tt.wantEnd) {
				t.Errorf("MakeAttachmentFileName() = %q, want suffix %q", got, tt.wantEnd)
			}
			if strings.Contains(got, "/") {
				t.Errorf("MakeAttachmentFileName() = %q, must not contain path separators", got)
			}
		})
	}
}
