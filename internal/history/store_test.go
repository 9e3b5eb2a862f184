package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T, limit int) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"), limit)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_AppendAndRecent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t, 0)

	first, err := s.Append(ctx, Entry{
		Allowed:    "10.0.0.0/24",
		Disallowed: "10.0.0.128/25",
		Result:     "AllowedIPs = 10.0.0.0/25",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("ID = 0, want assigned")
	}
	if first.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt is zero, want filled in")
	}

	second, err := s.Append(ctx, Entry{Allowed: "0.0.0.0/0", Result: "AllowedIPs = 0.0.0.0/0"})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("order = [%d, %d], want [%d, %d]", got[0].ID, got[1].ID, second.ID, first.ID)
	}
	if got[1].Allowed != "10.0.0.0/24" || got[1].Disallowed != "10.0.0.128/25" {
		t.Fatalf("entry = %+v", got[1])
	}
}

func TestStore_RetentionLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t, 3)

	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.Append(ctx, Entry{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Allowed:   "10.0.0.0/8",
			Result:    "AllowedIPs = 10.0.0.0/8",
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Fatalf("Count = %d, want 3", n)
	}

	got, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// The oldest two were pruned; the newest survivor carries the last
	// timestamp written.
	if want := base.Add(4 * time.Minute); !got[0].CreatedAt.Equal(want) {
		t.Fatalf("newest CreatedAt = %v, want %v", got[0].CreatedAt, want)
	}
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t, 0)

	if _, err := s.Append(ctx, Entry{Allowed: "10.0.0.1", Result: "AllowedIPs = 10.0.0.1/32"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Fatalf("Count = %d, want 0", n)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), "  ", 0); err == nil {
		t.Fatalf("err = nil, want non-nil")
	}
}
