package sweeper

import (
	"reflect"
	"testing"
	"time"

	"github.com/cantiere-digitale/giornale/internal/model"
)

func TestOrphanKeys(t *testing.T) {
	now := time.Now()
	cutoff := now.Add(-24 * time.Hour)

	referenced := map[string]struct{}{
		"projects/p1/2024-03-01/a.jpg":       {},
		"projects/p1/2024-03-01/thumb-a.jpg": {},
	}

	objects := []ObjectInfo{
		{Key: "projects/p1/2024-03-01/a.jpg", LastModified: now.Add(-48 * time.Hour)},
		{Key: "projects/p1/2024-03-01/thumb-a.jpg", LastModified: now.Add(-48 * time.Hour)},
		{Key: "projects/p1/2024-03-01/old-orphan.jpg", LastModified: now.Add(-48 * time.Hour)},
		{Key: "projects/p1/2024-03-02/fresh-upload.jpg", LastModified: now.Add(-time.Hour)},
	}

	got := OrphanKeys(referenced, objects, cutoff)
	want := []string{"projects/p1/2024-03-01/old-orphan.jpg"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("OrphanKeys() = %v, want %v", got, want)
	}
}

func TestOrphanKeysNothingReferenced(t *testing.T) {
	cutoff := time.Now()

	objects := []ObjectInfo{
		{Key: "projects/p1/2024-03-01/a.jpg", LastModified: cutoff.Add(-time.Hour)},
		{Key: "projects/p1/2024-03-01/b.jpg", LastModified: cutoff.Add(-2 * time.Hour)},
	}

	got := OrphanKeys(map[string]struct{}{}, objects, cutoff)
	if len(got) != 2 {
		t.Errorf("OrphanKeys() returned %d keys, want 2", len(got))
	}
}

func TestReferencedKeys(t *testing.T) {
	logs := []model.DailyLog{
		{
			Annotations: []model.Annotation{
				{
					Attachments: []model.Attachment{
						{ObjectName: "projects/p1/2024-03-01/a.jpg", ThumbObjectName: "projects/p1/2024-03-01/thumb-a.jpg"},
						{ObjectName: "projects/p1/2024-03-01/doc.pdf"},
					},
				},
			},
		},
		{
			Annotations: []model.Annotation{
				{
					Attachments: []model.Attachment{
						{ObjectName: "projects/p1/2024-03-02/b.jpg"},
					},
				},
			},
		},
	}

	got := ReferencedKeys(logs)

	want := []string{
		"projects/p1/2024-03-01/a.jpg",
		"projects/p1/2024-03-01/thumb-a.jpg",
		"projects/p1/2024-03-01/doc.pdf",
		"projects/p1/2024-03-02/b.jpg",
	}
	if len(got) != len(want) {
		t.Fatalf("ReferencedKeys() returned %d keys, want %d", len(got), len(want))
	}
	for _, key := range want {
		if _, ok := got[key]; !ok {
			t.Errorf("ReferencedKeys() missing key %q", key)
		}
	}
}
