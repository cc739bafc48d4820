package giornale

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	date := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	if got := FormatDate(date); got != "01/03/2024" {
		t.Errorf("FormatDate() = %q, want %q", got, "01/03/2024")
	}
}

func TestAnnotationHeading(t *testing.T) {
	tests := []struct {
		name       string
		annotation ReportAnnotation
		expected   string
	}{
		{
			name: "Author with role",
			annotation: ReportAnnotation{
				Type:   "Descrizione Lavori Svolti",
				Author: "Ing. Mario Rossi",
				Role:   "Direttore dei Lavori (DL)",
			},
			expected: "Descrizione Lavori Svolti - Ing. Mario Rossi (Direttore dei Lavori (DL))",
		},
		{
			name: "Signed annotation",
			annotation: ReportAnnotation{
				Type:   "Verbale di Constatazione",
				Author: "Paolo Bianchi",
				Signed: true,
			},
			expected: "Verbale di Constatazione - Paolo Bianchi [firmato]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := annotationHeading(tt.annotation); got != tt.expected {
				t.Errorf("annotationHeading() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestResourceLine(t *testing.T) {
	tests := []struct {
		name     string
		resource ReportResource
		expected string
	}{
		{
			name: "Plain resource",
			resource: ReportResource{
				Name:        "Operaio specializzato",
				Description: "Carpentiere",
				Quantity:    3,
			},
			expected: "3 x Operaio specializzato - Carpentiere",
		},
		{
			name: "Resource with company and notes",
			resource: ReportResource{
				Name:        "Escavatore 20t",
				Description: "Scavo fondazioni",
				Quantity:    1,
				Company:     "Edilscavi srl",
				Notes:       "Mezzo a noleggio",
			},
			expected: "1 x Escavatore 20t - Scavo fondazioni (Edilscavi srl). Mezzo a noleggio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resourceLine(tt.resource); got != tt.expected {
				t.Errorf("resourceLine() = %q, want %q", got, tt.expected)
			}
		})
	}
}
