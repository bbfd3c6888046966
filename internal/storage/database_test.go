package storage

import (
	"path/filepath"
	"testing"
)

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) KV{
		"memory": func(t *testing.T) KV { return NewMemory() },
		"sqlite": func(t *testing.T) KV {
			db, err := Open(filepath.Join(t.TempDir(), "test.db"))
			if err != nil {
				t.Fatalf("Open() returned an unexpected error: %v", err)
			}
			t.Cleanup(func() { db.Close() })
			return db
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			kv := newStore(t)

			if _, ok, err := kv.Get(DeckKey); err != nil || ok {
				t.Fatalf("Expected missing key, got ok=%v err=%v", ok, err)
			}

			if err := kv.Set(DeckKey, `[]`); err != nil {
				t.Fatalf("Set() returned an unexpected error: %v", err)
			}
			if err := kv.Set(DeckKey, `[{"id":"1"}]`); err != nil {
				t.Fatalf("Set() overwrite returned an unexpected error: %v", err)
			}
			v, ok, err := kv.Get(DeckKey)
			if err != nil || !ok {
				t.Fatalf("Expected key to exist, got ok=%v err=%v", ok, err)
			}
			if v != `[{"id":"1"}]` {
				t.Errorf("Expected the last written value, got %q", v)
			}

			if err := kv.Remove(DeckKey); err != nil {
				t.Fatalf("Remove() returned an unexpected error: %v", err)
			}
			if _, ok, _ := kv.Get(DeckKey); ok {
				t.Error("Expected key to be gone after Remove")
			}
			if err := kv.Remove(DeckKey); err != nil {
				t.Errorf("Removing a missing key should not fail, got %v", err)
			}
		})
	}
}

func TestDBPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	if err := db.Set(SessionStartKey, "2026-01-01T00:00:00.000Z"); err != nil {
		t.Fatalf("Set() returned an unexpected error: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("Reopen returned an unexpected error: %v", err)
	}
	defer db.Close()

	v, ok, err := db.Get(SessionStartKey)
	if err != nil || !ok || v != "2026-01-01T00:00:00.000Z" {
		t.Errorf("Expected persisted value, got %q ok=%v err=%v", v, ok, err)
	}
}
