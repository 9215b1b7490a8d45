package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lu-zhengda/accountctl/internal/store"
)

func TestSetGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.Set(ctx, "token", "t1", time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := db.Get(ctx, "token")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "t1" {
		t.Errorf("Get() = %q, want %q", got, "t1")
	}
}

func TestSet_Overwrites(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	db.Set(ctx, "token", "t1", time.Hour)
	if err := db.Set(ctx, "token", "t2", time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := db.Get(ctx, "token")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "t2" {
		t.Errorf("Get() = %q, want %q", got, "t2")
	}
}

func TestGet_Missing(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Get(context.Background(), "user")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() error = %v, want store.ErrNotFound", err)
	}
}

func TestGet_Expired(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return now }

	if err := db.Set(ctx, "user", `{"name":"A"}`, 7*24*time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	now = now.Add(6 * 24 * time.Hour)
	if _, err := db.Get(ctx, "user"); err != nil {
		t.Fatalf("Get() before expiry error: %v", err)
	}

	now = now.Add(2 * 24 * time.Hour)
	if _, err := db.Get(ctx, "user"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get() after expiry error = %v, want store.ErrNotFound", err)
	}

	var count int
	if err := db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM session_entries`).Scan(&count); err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 0 {
		t.Errorf("got %d rows after expired read, want 0", count)
	}
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	db.Set(ctx, "token", "t1", time.Hour)
	if err := db.Delete(ctx, "token"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := db.Get(ctx, "token"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want store.ErrNotFound", err)
	}
	if err := db.Delete(ctx, "token"); err != nil {
		t.Errorf("Delete() of missing key error: %v", err)
	}
}

func TestPurgeExpired(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return now }

	db.Set(ctx, "old", "x", time.Minute)
	db.Set(ctx, "fresh", "y", time.Hour)

	now = now.Add(10 * time.Minute)
	n, err := db.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired() error: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d entries, want 1", n)
	}
	if got, err := db.Get(ctx, "fresh"); err != nil || got != "y" {
		t.Errorf("Get(fresh) = %q, %v; want %q, nil", got, err, "y")
	}
}
