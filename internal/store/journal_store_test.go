package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"
)

func TestJournalStoreLastEntryName(t *testing.T) {
	ctx := context.Background()
	yearStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	getter := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "ORDER BY date DESC, created_at DESC") {
				t.Fatalf("last entry must be picked by recency: %s", query)
			}
			if len(args) != 3 || args[0] != "j1" || args[1] != yearStart || args[2] != yearEnd {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*string) = "VT/2024/0041"
			return nil
		},
	}
	store := NewJournalStore(stubDB{})
	name, err := store.LastEntryName(ctx, getter, "j1", yearStart, yearEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "VT/2024/0041" {
		t.Fatalf("unexpected name: %s", name)
	}
}

func TestJournalStoreLastEntryNameEmptyJournal(t *testing.T) {
	ctx := context.Background()
	getter := stubGetter{
		getFn: func(context.Context, any, string, ...any) error {
			return sql.ErrNoRows
		},
	}
	store := NewJournalStore(stubDB{})
	_, err := store.LastEntryName(ctx, getter, "j1", time.Now(), time.Now())
	if err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestJournalStoreGetByCode(t *testing.T) {
	ctx := context.Background()
	store := NewJournalStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM journals") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != "VT" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return nil
		},
	})
	if _, err := store.GetByCode(ctx, "VT"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
