package constant

import "testing"

func TestWeatherStateIsValid(t *testing.T) {
	for _, ws := range []WeatherState{WeatherSole, WeatherVariabile, WeatherNuvoloso, WeatherPioggia, WeatherNeve} {
		if !ws.IsValid() {
			t.Errorf("expected weather state %q to be valid", ws)
		}
	}

	for _, ws := range []WeatherState{"", "Sereno", "sole"} {
		if ws.IsValid() {
			t.Errorf("expected weather state %q to be invalid", ws)
		}
	}
}

func TestPrecipitationIsValid(t *testing.T) {
	for _, p := range []Precipitation{PrecipitationAssenti, PrecipitationDeboli, PrecipitationModerate, PrecipitationForti} {
		if !p.IsValid() {
			t.Errorf("expected precipitation %q to be valid", p)
		}
	}

	for _, p := range []Precipitation{"", "Intense", "assenti"} {
		if p.IsValid() {
			t.Errorf("expected precipitation %q to be invalid", p)
		}
	}
}

func TestResourceTypeIsValid(t *testing.T) {
	for _, rt := range []ResourceType{ResourceTypeManodopera, ResourceTypeMacchinario} {
		if !rt.IsValid() {
			t.Errorf("expected resource type %q to be valid", rt)
		}
	}

	if ResourceType("Materiale").IsValid() {
		t.Error("expected unknown resource type to be invalid")
	}
}

func TestAnnotationTypeIsValid(t *testing.T) {
	for _, at := range AnnotationTypes() {
		if !at.IsValid() {
			t.Errorf("expected annotation type %q to be valid", at)
		}
	}

	if AnnotationType("Nota libera").IsValid() {
		t.Error("expected unknown annotation type to be invalid")
	}
}
