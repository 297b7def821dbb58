package preferences

import (
	"context"
	"testing"

	"github.com/swisscitizen/prep/internal/kvstore"
)

func TestDarkMode(t *testing.T) {
	ctx := context.Background()
	s := NewService(kvstore.NewMemory())

	on, set, err := s.DarkMode(ctx)
	if err != nil {
		t.Fatalf("DarkMode: %v", err)
	}
	if on || set {
		t.Errorf("fresh store: on=%v set=%v, want unset", on, set)
	}

	if err := s.SetDarkMode(ctx, true); err != nil {
		t.Fatalf("SetDarkMode: %v", err)
	}
	on, set, _ = s.DarkMode(ctx)
	if !on || !set {
		t.Errorf("after set: on=%v set=%v", on, set)
	}
}

func TestToggleDarkMode(t *testing.T) {
	ctx := context.Background()
	s := NewService(kvstore.NewMemory())

	for i, want := range []bool{true, false, true} {
		got, err := s.ToggleDarkMode(ctx)
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if got != want {
			t.Errorf("toggle %d = %v, want %v", i, got, want)
		}
	}

	on, set, _ := s.DarkMode(ctx)
	if !on || !set {
		t.Errorf("stored: on=%v set=%v, want on", on, set)
	}
}
