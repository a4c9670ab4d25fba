package notes

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// storeUnderTest lets the same cases run against every backend.
type storeUnderTest interface {
	Store
	Insert(ctx context.Context, note *Note) error
}

func openStores(t *testing.T) map[string]storeUnderTest {
	t.Helper()

	sqlite, err := NewSQLiteStore(&SQLiteConfig{
		Path:        filepath.Join(t.TempDir(), "notes.db"),
		WALMode:     true,
		BusyTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to open SQLite store: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]storeUnderTest{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func seed(t *testing.T, store storeUnderTest) {
	t.Helper()
	ctx := context.Background()

	cases := []*Note{
		{Deck: "Spanish", Fields: map[string]string{"Front": "perro", "Back": "dog", "Example": ""}},
		{Deck: "Spanish", Fields: map[string]string{"Front": "gato", "Back": "", "Example": ""}},
		{Deck: "French", Fields: map[string]string{"Front": "chien", "Back": "dog", "Example": "Le chien dort."}},
	}
	for _, note := range cases {
		if err := store.Insert(ctx, note); err != nil {
			t.Fatalf("Failed to seed note: %v", err)
		}
	}
}

func TestList_FiltersByDeck(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, store)

			result, err := store.List(context.Background(), Filter{Deck: "Spanish"})
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(result) != 2 {
				t.Fatalf("Expected 2 Spanish notes, got %d", len(result))
			}
			for _, note := range result {
				if note.Deck != "Spanish" {
					t.Errorf("Expected deck Spanish, got %q", note.Deck)
				}
			}
		})
	}
}

func TestList_FiltersByMissingField(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, store)

			result, err := store.List(context.Background(), Filter{MissingField: "Example"})
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(result) != 2 {
				t.Fatalf("Expected 2 notes missing Example, got %d", len(result))
			}
			for _, note := range result {
				if note.Fields["Example"] != "" {
					t.Errorf("Note %d has a filled Example field", note.ID)
				}
			}
		})
	}
}

func TestList_Limit(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, store)

			result, err := store.List(context.Background(), Filter{Limit: 1})
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(result) != 1 {
				t.Errorf("Expected 1 note with limit 1, got %d", len(result))
			}
		})
	}
}

func TestList_OrderedByID(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, store)

			result, err := store.List(context.Background(), Filter{})
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			for i := 1; i < len(result); i++ {
				if result[i].ID <= result[i-1].ID {
					t.Errorf("Notes out of order: %d after %d", result[i].ID, result[i-1].ID)
				}
			}
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), 9999)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestUpdateFields_MergesAndBumpsModifiedAt(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, store)
			ctx := context.Background()

			before, err := store.List(ctx, Filter{Deck: "Spanish", Limit: 1})
			if err != nil || len(before) == 0 {
				t.Fatalf("Failed to load seeded note: %v", err)
			}
			id := before[0].ID

			err = store.UpdateFields(ctx, id, map[string]string{
				"Example": "El perro ladra.",
			})
			if err != nil {
				t.Fatalf("UpdateFields failed: %v", err)
			}

			after, err := store.Get(ctx, id)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if after.Fields["Example"] != "El perro ladra." {
				t.Errorf("Expected merged Example field, got %q", after.Fields["Example"])
			}
			if after.Fields["Front"] != before[0].Fields["Front"] {
				t.Errorf("Untouched field changed: %q != %q", after.Fields["Front"], before[0].Fields["Front"])
			}
			if !after.ModifiedAt.After(before[0].ModifiedAt) && !after.ModifiedAt.Equal(before[0].ModifiedAt) {
				t.Errorf("Expected ModifiedAt to advance, got %v -> %v", before[0].ModifiedAt, after.ModifiedAt)
			}
		})
	}
}

func TestUpdateFields_NotFound(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.UpdateFields(context.Background(), 9999, map[string]string{"Front": "x"})
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestInsert_AssignsSequentialIDs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := &Note{Deck: "d", Fields: map[string]string{}}
	second := &Note{Deck: "d", Fields: map[string]string{}}
	if err := store.Insert(ctx, first); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, second); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if second.ID != first.ID+1 {
		t.Errorf("Expected sequential IDs, got %d then %d", first.ID, second.ID)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	note := &Note{Deck: "d", Fields: map[string]string{"Front": "a"}}
	if err := store.Insert(ctx, note); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.Get(ctx, note.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	got.Fields["Front"] = "mutated"

	again, err := store.Get(ctx, note.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if again.Fields["Front"] != "a" {
		t.Error("Mutation of a returned note leaked into the store")
	}
}
