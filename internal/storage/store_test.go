package storage

import (
	"errors"
	"testing"
)

func TestMemStoreRoundTrip(t *testing.T) {
	s := NewMemStore()
	if _, err := s.Get("token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set("token", "abc"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := s.Get("token")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != "abc" {
		t.Fatalf("unexpected value: %s", value)
	}
	if err := s.Delete("token"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := s.Get("token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	if err := s.Set("disabledOffers", `["a","b"]`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Set("token", "jwt-token"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen store failed: %v", err)
	}
	value, err := reopened.Get("disabledOffers")
	if err != nil {
		t.Fatalf("get after reopen failed: %v", err)
	}
	if value != `["a","b"]` {
		t.Fatalf("unexpected value after reopen: %s", value)
	}
}

func TestFileStoreClear(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	if err := s.Set("token", "abc"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := s.Get("token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen store failed: %v", err)
	}
	if _, err := reopened.Get("token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected cleared state to persist, got %v", err)
	}
}
