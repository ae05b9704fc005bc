package location

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCachedProviderReusesRecentFix(t *testing.T) {
	now := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	inner := &stubProvider{fix: Fix{Lat: -26.2, Lng: 28.0, At: now}}

	cached := NewCachedProvider(inner, 60*time.Second)
	cached.now = func() time.Time { return now }

	if _, err := cached.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := cached.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Errorf("inner provider called %d times, want 1 (second call served from cache)", inner.calls)
	}
}

func TestCachedProviderExpiresFix(t *testing.T) {
	now := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	inner := &stubProvider{fix: Fix{Lat: -26.2, Lng: 28.0, At: now}}

	cached := NewCachedProvider(inner, 60*time.Second)
	cached.now = func() time.Time { return now }

	if _, err := cached.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Advance past the fix-reuse window; the device must be read again.
	later := now.Add(61 * time.Second)
	cached.now = func() time.Time { return later }
	inner.fix.At = later

	if _, err := cached.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("inner provider called %d times, want 2 after expiry", inner.calls)
	}
}

func TestCachedProviderDoesNotCacheFailures(t *testing.T) {
	inner := &stubProvider{err: ErrUnavailable}
	cached := NewCachedProvider(inner, 60*time.Second)

	for i := 0; i < 2; i++ {
		if _, err := cached.Acquire(context.Background()); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("err = %v, want ErrUnavailable", err)
		}
	}
	if inner.calls != 2 {
		t.Errorf("inner provider called %d times, want 2 (failures are not cached)", inner.calls)
	}
}

func TestAcquireHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &stubProvider{fix: Fix{Lat: -26.2, Lng: 28.0, At: time.Now()}}
	if _, err := inner.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestUnsupportedProvider(t *testing.T) {
	if _, err := (UnsupportedProvider{}).Acquire(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
