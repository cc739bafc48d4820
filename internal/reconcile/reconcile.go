// Package reconcile merges the resources recorded in a single day's log into
// the project-wide registered-resource catalogue. It performs no I/O; callers
// run it inside the save transaction and persist the result.
package reconcile

import (
	"github.com/cantiere-digitale/giornale/internal/model"
	"github.com/cantiere-digitale/giornale/internal/util"
)

type Result struct {
	// Catalogue is the updated project catalogue. Entries are only ever
	// appended or updated in place; reconciliation never removes entries.
	Catalogue []model.RegisteredResource
	// Resources mirrors the input list, with RegisteredResourceID filled in
	// for every entry.
	Resources []model.Resource
	// Changed reports whether Catalogue differs from the input catalogue.
	Changed bool
}

// signature identifies a catalogue entry by content. Matching is literal
// string equality: no case folding, no whitespace normalization.
type signature struct {
	resType     string
	description string
	name        string
	company     string
}

func resourceSignature(r model.Resource) signature {
	return signature{
		resType:     string(r.Type),
		description: r.Description,
		name:        r.Name,
		company:     r.Company,
	}
}

func entrySignature(e model.RegisteredResource) signature {
	return signature{
		resType:     string(e.Type),
		description: e.Description,
		name:        e.Name,
		company:     e.Company,
	}
}

// Reconcile processes resources in list order against the catalogue.
//
// Each resource is matched first by its RegisteredResourceID, then by content
// signature against the catalogue as extended so far in this pass, so two
// identical new resources in the same save produce a single catalogue entry.
// On a match the resource gets the entry's id and, when the field values
// drifted, the entry is overwritten with the resource's values: the day's log
// is the source of truth for content, but an entry's id never changes.
// Unmatched resources append a new entry with a synthesized id.
func Reconcile(resources []model.Resource, catalogue []model.RegisteredResource) Result {
	updated := make([]model.RegisteredResource, len(catalogue))
	copy(updated, catalogue)

	byID := make(map[string]int, len(updated))
	bySignature := make(map[signature]int, len(updated))
	for i, entry := range updated {
		byID[entry.ID] = i
		bySignature[entrySignature(entry)] = i
	}

	out := make([]model.Resource, len(resources))
	copy(out, resources)

	changed := false
	for i := range out {
		res := &out[i]

		idx, found := -1, false
		if res.RegisteredResourceID != "" {
			idx, found = lookup(byID, res.RegisteredResourceID)
		}
		if !found {
			idx, found = lookup(bySignature, resourceSignature(*res))
		}

		if found {
			res.RegisteredResourceID = updated[idx].ID
			staleSig := entrySignature(updated[idx])
			if overwriteEntry(&updated[idx], *res) {
				if bySignature[staleSig] == idx {
					delete(bySignature, staleSig)
				}
				bySignature[entrySignature(updated[idx])] = idx
				changed = true
			}
			continue
		}

		entry := model.RegisteredResource{
			ID:          NewEntryID(),
			Type:        res.Type,
			Description: res.Description,
			Name:        res.Name,
			Company:     res.Company,
		}
		updated = append(updated, entry)
		idx = len(updated) - 1
		byID[entry.ID] = idx
		bySignature[entrySignature(entry)] = idx
		res.RegisteredResourceID = entry.ID
		changed = true
	}

	return Result{
		Catalogue: updated,
		Resources: out,
		Changed:   changed,
	}
}

func lookup[K comparable](m map[K]int, key K) (int, bool) {
	idx, ok := m[key]
	if !ok {
		return -1, false
	}
	return idx, true
}

// overwriteEntry copies the resource's content fields onto the catalogue
// entry, reporting whether anything actually changed.
func overwriteEntry(entry *model.RegisteredResource, res model.Resource) bool {
	if entry.Type == res.Type && entry.Description == res.Description &&
		entry.Name == res.Name && entry.Company == res.Company {
		return false
	}

	entry.Type = res.Type
	entry.Description = res.Description
	entry.Name = res.Name
	entry.Company = res.Company
	return true
}

// NewEntryID synthesizes a catalogue entry id: epoch millis plus a random
// suffix.
func NewEntryID() string {
	return util.NewPrefixedID("reg")
}
