package location

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Fix is one device-location reading.
type Fix struct {
	Lat       float64
	Lng       float64
	AccuracyM float64
	At        time.Time
}

// Acquisition failures are surfaced to the caller so the UI can fall back to
// manual entry. Silently defaulting a location would corrupt the
// eligibility decision.
var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrUnavailable      = errors.New("location unavailable on this device")
	ErrSuperseded       = errors.New("location request superseded by a newer one")
)

// Provider acquires a device-location fix. Acquire must honor ctx
// cancellation; a single call is one in-flight request.
type Provider interface {
	Acquire(ctx context.Context) (Fix, error)
}

// UnsupportedProvider always fails with ErrUnavailable. Deployments without
// a device-location gateway use it so acquisition fails loudly instead of
// defaulting a location.
type UnsupportedProvider struct{}

func (UnsupportedProvider) Acquire(context.Context) (Fix, error) {
	return Fix{}, ErrUnavailable
}

// DefaultMaxFixAge is how long a previous fix may be reused instead of
// forcing a new reading.
const DefaultMaxFixAge = 60 * time.Second

// CachedProvider wraps a Provider and serves a recent fix without touching
// the device again.
type CachedProvider struct {
	inner     Provider
	maxFixAge time.Duration
	now       func() time.Time

	mu   sync.Mutex
	last *Fix
}

func NewCachedProvider(inner Provider, maxFixAge time.Duration) *CachedProvider {
	if maxFixAge <= 0 {
		maxFixAge = DefaultMaxFixAge
	}
	return &CachedProvider{inner: inner, maxFixAge: maxFixAge, now: time.Now}
}

func (c *CachedProvider) Acquire(ctx context.Context) (Fix, error) {
	c.mu.Lock()
	if c.last != nil && c.now().Sub(c.last.At) <= c.maxFixAge {
		fix := *c.last
		c.mu.Unlock()
		return fix, nil
	}
	c.mu.Unlock()

	fix, err := c.inner.Acquire(ctx)
	if err != nil {
		return Fix{}, err
	}

	c.mu.Lock()
	c.last = &fix
	c.mu.Unlock()
	return fix, nil
}
