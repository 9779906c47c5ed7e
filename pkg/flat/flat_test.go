package flat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shashiranjanraj/freshko/pkg/flat"
)

func TestMemoryStoreBasics(t *testing.T) {
	m := flat.NewMemoryStore()

	if _, ok := m.Get("missing"); ok {
		t.Error("expected miss on empty store")
	}

	if err := m.Set("freshko-users", `[]`); err != nil {
		t.Fatal(err)
	}
	if v, ok := m.Get("freshko-users"); !ok || v != `[]` {
		t.Errorf("expected round trip, got %q ok=%v", v, ok)
	}

	if err := m.Remove("freshko-users"); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Get("freshko-users"); ok {
		t.Error("expected miss after Remove")
	}
}

func TestMemoryStoreKeysSorted(t *testing.T) {
	m := flat.NewMemoryStore()
	_ = m.Set("b", "1")
	_ = m.Set("a", "2")

	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.json")

	s, err := flat.NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("freshko-store", `{"cart":[]}`); err != nil {
		t.Fatal(err)
	}

	reopened, err := flat.NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := reopened.Get("freshko-store"); !ok || v != `{"cart":[]}` {
		t.Errorf("value lost across reopen: %q ok=%v", v, ok)
	}
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := flat.NewFileStore(path)
	if err != nil {
		t.Fatalf("corrupt file must not be fatal: %v", err)
	}
	if keys := s.Keys(); len(keys) != 0 {
		t.Errorf("expected empty store, got %v", keys)
	}
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.json")

	s, err := flat.NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Set("a", "1")
	_ = s.Set("b", "2")

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if len(s.Keys()) != 0 {
		t.Error("expected empty store after Clear")
	}
}
