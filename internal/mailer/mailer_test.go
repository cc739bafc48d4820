package mailer

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
)

func TestLogValidatedTemplate(t *testing.T) {
	tmpl, err := template.ParseFS(FS, "templates/"+LOG_VALIDATED_TEMPLATE)
	if err != nil {
		t.Fatalf("failed to parse template: %v", err)
	}

	vars := struct {
		LogDate         string
		OwnerName       string
		ProjectName     string
		AnnotationCount int
		ResourceCount   int
		LogURL          string
	}{
		LogDate:         "12/03/2026",
		OwnerName:       "Mario Rossi",
		ProjectName:     "Nuova palestra comunale",
		AnnotationCount: 3,
		ResourceCount:   5,
		LogURL:          "https://giornale.example.com/projects/p1/logs/2026-03-12",
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", vars); err != nil {
		t.Fatalf("failed to render subject block: %v", err)
	}
	if !strings.Contains(subject.String(), vars.LogDate) {
		t.Errorf("expected subject to mention the log date, got %q", subject.String())
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", vars); err != nil {
		t.Fatalf("failed to render body block: %v", err)
	}

	for _, want := range []string{vars.OwnerName, vars.ProjectName, vars.LogURL, "3", "5"} {
		if !strings.Contains(body.String(), want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
}

func TestNewSendgridSandboxMode(t *testing.T) {
	// isProduction = false must keep sandbox mode on so tests never deliver mail
	m := NewSendgrid("fake-api-key", "noreply@giornale.example.com", false, nil)
	if !m.isSandBox {
		t.Error("expected sandbox mode outside production")
	}

	m = NewSendgrid("fake-api-key", "noreply@giornale.example.com", true, nil)
	if m.isSandBox {
		t.Error("expected sandbox mode off in production")
	}
}
