package storage

import (
	"testing"

	"github.com/davidlugo/recetasworld/internal/logger"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(logger.New(logger.LevelOff, nil))

	if got, _ := s.Get("missing"); got != "" {
		t.Fatalf("absent key returned %q", got)
	}

	if err := s.Set("favorites", "[1,2]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := s.Get("favorites"); got != "[1,2]" {
		t.Fatalf("get = %q", got)
	}

	if err := s.Set("favorites", "[2]"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := s.Get("favorites"); got != "[2]" {
		t.Fatalf("get after overwrite = %q", got)
	}

	if err := s.Delete("favorites"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := s.Get("favorites"); got != "" {
		t.Fatalf("get after delete = %q", got)
	}

	// Deleting an absent key is a no-op.
	if err := s.Delete("favorites"); err != nil {
		t.Fatalf("double delete: %v", err)
	}
}
