package model

import (
	"testing"
	"time"

	"github.com/cantiere-digitale/giornale/internal/constant"
)

func TestLogIDForDate(t *testing.T) {
	// 23:30 in UTC+2 is already the next day's log in local terms, but the
	// id always follows UTC.
	loc := time.FixedZone("CEST", 2*60*60)
	date := time.Date(2024, time.March, 2, 1, 30, 0, 0, loc)

	if got := LogIDForDate(date); got != "2024-03-01" {
		t.Errorf("LogIDForDate() = %q, want %q", got, "2024-03-01")
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		log      DailyLog
		expected bool
	}{
		{
			name:     "No annotations and no resources",
			log:      DailyLog{Weather: DefaultWeather(), IsValidated: true},
			expected: true,
		},
		{
			name:     "With annotation",
			log:      DailyLog{Annotations: []Annotation{{Content: "Scavo completato"}}},
			expected: false,
		},
		{
			name:     "With resource",
			log:      DailyLog{Resources: []Resource{{Name: "Operaio", Quantity: 2}}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.log.IsEmpty(); got != tt.expected {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNormalizeTimestamps(t *testing.T) {
	loc := time.FixedZone("CET", 60*60)
	log := DailyLog{
		Date: time.Date(2024, time.March, 1, 13, 0, 0, 123456789, loc),
		Annotations: []Annotation{
			{Timestamp: time.Date(2024, time.March, 1, 9, 15, 30, 999999999, loc)},
		},
	}

	log.NormalizeTimestamps()

	if log.Date.Location() != time.UTC {
		t.Errorf("Date location = %v, want UTC", log.Date.Location())
	}
	if log.Date.Nanosecond()%int(time.Millisecond) != 0 {
		t.Errorf("Date not truncated to millisecond: %v", log.Date)
	}
	if ts := log.Annotations[0].Timestamp; ts.Location() != time.UTC || ts.Nanosecond()%int(time.Millisecond) != 0 {
		t.Errorf("Annotation timestamp not normalized: %v", ts)
	}
}

func TestNewDefaultLog(t *testing.T) {
	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	log := NewDefaultLog("p1", date)

	if log.ID != "2024-03-01" {
		t.Errorf("ID = %q, want %q", log.ID, "2024-03-01")
	}
	if log.ProjectID != "p1" {
		t.Errorf("ProjectID = %q, want %q", log.ProjectID, "p1")
	}
	if log.Date.Hour() != 12 || log.Date.Location() != time.UTC {
		t.Errorf("Date = %v, want noon UTC", log.Date)
	}
	if log.Weather != DefaultWeather() {
		t.Errorf("Weather = %+v, want default", log.Weather)
	}
	if log.Weather.State != constant.WeatherSole || log.Weather.Temperature != 20 || log.Weather.Precipitation != constant.PrecipitationAssenti {
		t.Errorf("DefaultWeather() = %+v", log.Weather)
	}
	if !log.IsEmpty() {
		t.Errorf("a fresh default log should be empty")
	}
	if log.IsValidated {
		t.Errorf("a fresh default log should not be validated")
	}
}
