package reconcile

import (
	"testing"

	"github.com/cantiere-digitale/giornale/internal/constant"
	"github.com/cantiere-digitale/giornale/internal/model"
)

func operaio(quantity int) model.Resource {
	return model.Resource{
		ID:          "res-1",
		Type:        constant.ResourceTypeManodopera,
		Description: "Operaio Specializzato",
		Name:        "Mario Rossi",
		Quantity:    quantity,
	}
}

func TestReconcileCreatesEntryForNewResource(t *testing.T) {
	result := Reconcile([]model.Resource{operaio(2)}, nil)

	if !result.Changed {
		t.Error("Changed = false, want true after appending a new entry")
	}
	if len(result.Catalogue) != 1 {
		t.Fatalf("catalogue size = %d, want 1", len(result.Catalogue))
	}

	entry := result.Catalogue[0]
	if entry.ID == "" {
		t.Error("new catalogue entry has empty id")
	}
	if entry.Type != constant.ResourceTypeManodopera || entry.Description != "Operaio Specializzato" ||
		entry.Name != "Mario Rossi" || entry.Company != "" {
		t.Errorf("catalogue entry fields = %+v, want the resource's fields", entry)
	}

	if got := result.Resources[0].RegisteredResourceID; got != entry.ID {
		t.Errorf("resource back-reference = %q, want %q", got, entry.ID)
	}
}

func TestReconcileMatchesByContentAcrossSaves(t *testing.T) {
	first := Reconcile([]model.Resource{operaio(2)}, nil)

	// Second day: same resource by content, different quantity, no back-reference.
	second := Reconcile([]model.Resource{operaio(5)}, first.Catalogue)

	if second.Changed {
		t.Error("Changed = true, want false when content already matches")
	}
	if len(second.Catalogue) != 1 {
		t.Errorf("catalogue size = %d, want 1 (no duplicate for a content match)", len(second.Catalogue))
	}
	if second.Resources[0].RegisteredResourceID != first.Catalogue[0].ID {
		t.Errorf("resource linked to %q, want existing entry %q",
			second.Resources[0].RegisteredResourceID, first.Catalogue[0].ID)
	}
	if second.Resources[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5 kept on the day's record", second.Resources[0].Quantity)
	}
}

func TestReconcileMatchesByIDAndOverwritesContent(t *testing.T) {
	catalogue := []model.RegisteredResource{{
		ID:          "reg-1",
		Type:        constant.ResourceTypeManodopera,
		Description: "Operaio",
		Name:        "Mario Rossi",
	}}

	res := model.Resource{
		ID:                   "res-1",
		RegisteredResourceID: "reg-1",
		Type:                 constant.ResourceTypeManodopera,
		Description:          "Operaio Specializzato",
		Name:                 "Mario Rossi",
		Quantity:             1,
	}

	result := Reconcile([]model.Resource{res}, catalogue)

	if !result.Changed {
		t.Error("Changed = false, want true after a content overwrite")
	}
	if len(result.Catalogue) != 1 {
		t.Fatalf("catalogue size = %d, want 1 (id match must not append)", len(result.Catalogue))
	}
	if result.Catalogue[0].ID != "reg-1" {
		t.Errorf("entry id = %q, want identity to stay stable", result.Catalogue[0].ID)
	}
	if result.Catalogue[0].Description != "Operaio Specializzato" {
		t.Errorf("entry description = %q, want the log's value (log is source of truth)",
			result.Catalogue[0].Description)
	}
}

func TestReconcileDeduplicatesWithinSinglePass(t *testing.T) {
	// Two resources with the same new signature in one save: only the first
	// creates a catalogue entry, the second must match it.
	resources := []model.Resource{operaio(2), operaio(3)}
	resources[1].ID = "res-2"

	result := Reconcile(resources, nil)

	if len(result.Catalogue) != 1 {
		t.Fatalf("catalogue size = %d, want 1", len(result.Catalogue))
	}
	if result.Resources[0].RegisteredResourceID != result.Resources[1].RegisteredResourceID {
		t.Errorf("resources linked to %q and %q, want the same entry",
			result.Resources[0].RegisteredResourceID, result.Resources[1].RegisteredResourceID)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	resources := []model.Resource{
		operaio(2),
		{
			ID:          "res-2",
			Type:        constant.ResourceTypeMacchinario,
			Description: "Martello Demolitore",
			Name:        "BFG 9000",
			Company:     "Edilizia Bianchi",
			Quantity:    1,
		},
	}

	first := Reconcile(resources, nil)
	second := Reconcile(first.Resources, first.Catalogue)

	if second.Changed {
		t.Error("second pass Changed = true, want false")
	}
	if len(second.Catalogue) != len(first.Catalogue) {
		t.Errorf("second pass catalogue size = %d, want %d", len(second.Catalogue), len(first.Catalogue))
	}
}

func TestReconcileMatchingIsLiteral(t *testing.T) {
	catalogue := []model.RegisteredResource{{
		ID:          "reg-1",
		Type:        constant.ResourceTypeManodopera,
		Description: "Operaio",
		Name:        "Mario Rossi",
	}}

	// Different case is a different resource: no normalization is applied.
	res := operaio(1)
	res.Description = "operaio"
	res.Name = "mario rossi"

	result := Reconcile([]model.Resource{res}, catalogue)

	if len(result.Catalogue) != 2 {
		t.Errorf("catalogue size = %d, want 2 (matching is case-sensitive)", len(result.Catalogue))
	}
}

func TestReconcileNeverProducesDuplicateSignatures(t *testing.T) {
	resources := []model.Resource{
		operaio(1),
		operaio(2),
		{ID: "res-3", Type: constant.ResourceTypeMacchinario, Description: "Gru", Name: "Liebherr", Quantity: 1},
		operaio(4),
	}
	resources[1].ID = "res-2"
	resources[3].ID = "res-4"

	result := Reconcile(resources, nil)

	seen := map[string]bool{}
	for _, e := range result.Catalogue {
		key := string(e.Type) + "\x00" + e.Description + "\x00" + e.Name + "\x00" + e.Company
		if seen[key] {
			t.Errorf("duplicate catalogue signature for %+v", e)
		}
		seen[key] = true
	}
}

func TestReconcileDoesNotRemoveEntries(t *testing.T) {
	catalogue := []model.RegisteredResource{
		{ID: "reg-1", Type: constant.ResourceTypeManodopera, Description: "Operaio", Name: "Mario Rossi"},
		{ID: "reg-2", Type: constant.ResourceTypeMacchinario, Description: "Gru", Name: "Liebherr"},
	}

	// A save with no resources at all leaves the catalogue alone.
	result := Reconcile(nil, catalogue)

	if result.Changed {
		t.Error("Changed = true, want false for an empty resource list")
	}
	if len(result.Catalogue) != 2 {
		t.Errorf("catalogue size = %d, want 2 (entries are never removed here)", len(result.Catalogue))
	}
}
