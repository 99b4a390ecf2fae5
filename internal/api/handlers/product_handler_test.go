package handlers

import (
	"testing"

	"github.com/kutbudev/storefront-api/internal/models"
)

func rows(pairs ...[2]uint) []models.ProductTag {
	out := make([]models.ProductTag, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, models.ProductTag{ID: p[0], TagID: p[1], ProductID: 1})
	}
	return out
}

func TestDiffProductTags(t *testing.T) {
	tests := []struct {
		name         string
		existing     []models.ProductTag
		desired      []uint
		wantAdd      []uint
		wantRemoveID []uint
	}{
		{
			name:         "empty to empty",
			existing:     nil,
			desired:      nil,
			wantAdd:      nil,
			wantRemoveID: nil,
		},
		{
			name:         "all new",
			existing:     nil,
			desired:      []uint{1, 2, 3},
			wantAdd:      []uint{1, 2, 3},
			wantRemoveID: nil,
		},
		{
			name:         "no change is a no-op",
			existing:     rows([2]uint{10, 1}, [2]uint{11, 2}),
			desired:      []uint{1, 2},
			wantAdd:      nil,
			wantRemoveID: nil,
		},
		{
			name:         "replace one tag",
			existing:     rows([2]uint{10, 1}, [2]uint{11, 2}),
			desired:      []uint{2, 3},
			wantAdd:      []uint{3},
			wantRemoveID: []uint{10},
		},
		{
			name:         "clear all",
			existing:     rows([2]uint{10, 1}, [2]uint{11, 2}),
			desired:      []uint{},
			wantAdd:      nil,
			wantRemoveID: []uint{10, 11},
		},
		{
			name:         "duplicate desired ids collapse",
			existing:     rows([2]uint{10, 1}),
			desired:      []uint{1, 1, 2, 2},
			wantAdd:      []uint{2},
			wantRemoveID: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAdd, gotRemove := diffProductTags(tt.existing, tt.desired)
			if !equalUints(gotAdd, tt.wantAdd) {
				t.Errorf("toAdd = %v, want %v", gotAdd, tt.wantAdd)
			}
			if !equalUints(gotRemove, tt.wantRemoveID) {
				t.Errorf("toRemove = %v, want %v", gotRemove, tt.wantRemoveID)
			}
		})
	}
}

func TestDiffProductTagsIdempotent(t *testing.T) {
	existing := rows([2]uint{10, 1}, [2]uint{11, 2})
	desired := []uint{2, 3}

	toAdd, toRemove := diffProductTags(existing, desired)
	if len(toAdd) == 0 && len(toRemove) == 0 {
		t.Fatal("first run should compute a non-empty diff")
	}

	// Simulate applying the diff, then reconcile again with the same list.
	after := rows([2]uint{11, 2}, [2]uint{12, 3})
	toAdd, toRemove = diffProductTags(after, desired)
	if len(toAdd) != 0 || len(toRemove) != 0 {
		t.Errorf("second run: toAdd = %v, toRemove = %v, want both empty", toAdd, toRemove)
	}
}

func TestProductTagRows(t *testing.T) {
	got := productTagRows(7, []uint{3, 3, 5})
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	for _, row := range got {
		if row.ProductID != 7 {
			t.Errorf("ProductID = %d, want 7", row.ProductID)
		}
	}
	if got[0].TagID != 3 || got[1].TagID != 5 {
		t.Errorf("tag ids = %d,%d, want 3,5", got[0].TagID, got[1].TagID)
	}
}

func equalUints(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
