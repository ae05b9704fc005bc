package location

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"kraal-bknd/internal/models"
)

const (
	// DefaultStaleAfter is how old a reading may be before it should be
	// re-acquired.
	DefaultStaleAfter = 24 * time.Hour

	// DefaultAcquireTimeout bounds a single device-location request.
	DefaultAcquireTimeout = 10 * time.Second

	// refreshDistanceKm is the movement threshold for the refresh heuristic.
	refreshDistanceKm = 100.0

	// kmPerDegree is the planar degree-to-km scale used by ShouldRefresh.
	// Deliberately cheaper than the haversine primitive: at a 100 km
	// threshold the planar error never flips the outcome.
	kmPerDegree = 111.0
)

// Patch is a partial BuyerLocation update. Nil fields are left untouched.
type Patch struct {
	Coordinate *models.Coordinate
	Province   *string
	Country    *string
	AccuracyM  *float64
}

// Store holds the current BuyerLocation per buyer, persisted through the
// injected Storage. Reads and writes for one buyer come from that buyer's
// session; the mutex covers the generation bookkeeping shared with GPS
// acquisition.
type Store struct {
	storage        Storage
	defaultCountry string
	staleAfter     time.Duration
	acquireTimeout time.Duration
	now            func() time.Time

	mu  sync.Mutex
	gen map[string]uint64
}

// Option configures a Store.
type Option func(*Store)

func WithStaleAfter(d time.Duration) Option {
	return func(s *Store) { s.staleAfter = d }
}

func WithAcquireTimeout(d time.Duration) Option {
	return func(s *Store) { s.acquireTimeout = d }
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore builds a Store over the given storage. A buyer with no record is
// reported as the default-country-only state.
func NewStore(storage Storage, defaultCountry string, opts ...Option) *Store {
	s := &Store{
		storage:        storage,
		defaultCountry: defaultCountry,
		staleAfter:     DefaultStaleAfter,
		acquireTimeout: DefaultAcquireTimeout,
		now:            time.Now,
		gen:            make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the buyer's current location, falling back to the
// default-country-only state when nothing is stored.
func (s *Store) Get(ctx context.Context, buyerID string) (models.BuyerLocation, error) {
	loc, err := s.storage.Load(ctx, buyerID)
	if err != nil {
		return models.BuyerLocation{}, err
	}
	if loc == nil {
		return models.BuyerLocation{Country: s.defaultCountry}, nil
	}
	if loc.Country == "" {
		loc.Country = s.defaultCountry
	}
	return *loc, nil
}

// Set shallow-merges the patch into the current location and stamps
// LastUpdated.
func (s *Store) Set(ctx context.Context, buyerID string, patch Patch) (models.BuyerLocation, error) {
	loc, err := s.Get(ctx, buyerID)
	if err != nil {
		return models.BuyerLocation{}, err
	}
	if patch.Coordinate != nil {
		c := *patch.Coordinate
		loc.Coordinate = &c
	}
	if patch.Province != nil {
		loc.Province = *patch.Province
	}
	if patch.Country != nil {
		loc.Country = *patch.Country
	}
	if patch.AccuracyM != nil {
		a := *patch.AccuracyM
		loc.AccuracyM = &a
	}
	now := s.now().UTC()
	loc.LastUpdated = &now
	if err := s.storage.Save(ctx, buyerID, loc); err != nil {
		return models.BuyerLocation{}, err
	}
	return loc, nil
}

// SetGPS records a device fix.
func (s *Store) SetGPS(ctx context.Context, buyerID string, lat, lng, accuracyM float64) (models.BuyerLocation, error) {
	return s.Set(ctx, buyerID, Patch{
		Coordinate: &models.Coordinate{Lat: lat, Lng: lng},
		AccuracyM:  &accuracyM,
	})
}

// SetManual records a manual province selection, optionally with a country.
// An empty country leaves the existing one in place.
func (s *Store) SetManual(ctx context.Context, buyerID, province, country string) (models.BuyerLocation, error) {
	patch := Patch{Province: &province}
	if country != "" {
		patch.Country = &country
	}
	return s.Set(ctx, buyerID, patch)
}

// Clear resets the buyer to the default-country-only state.
func (s *Store) Clear(ctx context.Context, buyerID string) error {
	return s.storage.Delete(ctx, buyerID)
}

// IsStale reports whether the reading is missing a timestamp, or older than
// the staleness threshold.
func (s *Store) IsStale(loc models.BuyerLocation) bool {
	if loc.LastUpdated == nil {
		return true
	}
	return s.now().Sub(*loc.LastUpdated) > s.staleAfter
}

// AcquireGPS runs one device-location request through the provider, bounded
// by the acquire timeout, and records the fix. Each call bumps a per-buyer
// generation; a call that finishes after a newer one started returns
// ErrSuperseded instead of overwriting the fresher result.
func (s *Store) AcquireGPS(ctx context.Context, buyerID string, provider Provider) (models.BuyerLocation, error) {
	s.mu.Lock()
	s.gen[buyerID]++
	myGen := s.gen[buyerID]
	s.mu.Unlock()

	acquireCtx, cancel := context.WithTimeout(ctx, s.acquireTimeout)
	defer cancel()

	fix, err := provider.Acquire(acquireCtx)
	if err != nil {
		return models.BuyerLocation{}, fmt.Errorf("acquire location: %w", err)
	}

	s.mu.Lock()
	superseded := s.gen[buyerID] != myGen
	s.mu.Unlock()
	if superseded {
		return models.BuyerLocation{}, ErrSuperseded
	}

	return s.SetGPS(ctx, buyerID, fix.Lat, fix.Lng, fix.AccuracyM)
}

// ShouldRefresh reports whether a newly observed coordinate warrants
// re-resolving: no prior timestamp, a timestamp past the staleness
// threshold, or movement of more than ~100 km since the prior coordinate.
// Distance uses a planar degree scaling, not the haversine primitive.
func ShouldRefresh(prev models.BuyerLocation, next models.Coordinate, now time.Time) bool {
	if prev.LastUpdated == nil {
		return true
	}
	if now.Sub(*prev.LastUpdated) > DefaultStaleAfter {
		return true
	}
	if prev.Coordinate == nil {
		return true
	}
	dLat := (next.Lat - prev.Coordinate.Lat) * kmPerDegree
	dLng := (next.Lng - prev.Coordinate.Lng) * kmPerDegree
	return math.Sqrt(dLat*dLat+dLng*dLng) > refreshDistanceKm
}
