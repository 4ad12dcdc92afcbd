package storage

import (
	"path/filepath"
	"testing"

	"github.com/davidlugo/recetasworld/internal/logger"
)

func TestBadgerStoreRoundTrip(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	dir := filepath.Join(t.TempDir(), "state")

	s, err := OpenBadger(dir, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if got, err := s.Get("currentUser"); err != nil || got != "" {
		t.Fatalf("absent key = (%q, %v)", got, err)
	}
	if err := s.Set("currentUser", `{"username":"ana","role":"admin"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// The blob survives a reopen; this is the "survives reload" store.
	s, err = OpenBadger(dir, log)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Get("currentUser")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `{"username":"ana","role":"admin"}` {
		t.Fatalf("blob = %q", got)
	}

	if err := s.Delete("currentUser"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := s.Get("currentUser"); got != "" {
		t.Fatalf("get after delete = %q", got)
	}
	if err := s.Delete("currentUser"); err != nil {
		t.Fatalf("double delete: %v", err)
	}
}
