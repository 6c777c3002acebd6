package weather

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/i474232898/weather-dashboard/internal/cities"
)

var errNoProvider = errors.New("no weather provider configured")

// Service fetches forecasts for grid cells and records the outcome in a Store.
type Service struct {
	store    Store
	provider Provider
	baseTime string
	loc      *time.Location
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone used for the current local date and hour.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithBaseTime sets the requested forecast batch time (HHMM).
func WithBaseTime(baseTime string) Option {
	return func(s *Service) {
		if baseTime != "" {
			s.baseTime = baseTime
		}
	}
}

// NewService creates a new Service.
func NewService(store Store, provider Provider, opts ...Option) *Service {
	s := &Service{
		store:    store,
		provider: provider,
		baseTime: DefaultBaseTime,
		loc:      time.Local,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Slice returns the time slice that applies right now.
func (s *Service) Slice() TimeSlice {
	return SliceAt(s.now().In(s.loc), s.baseTime)
}

// Fetch retrieves the forecast for (nx, ny), keeps only the applicable hour,
// groups it by category and replaces the stored entry for that cell. On
// failure the shared store error is set and stored data is left alone.
// The error is returned for logging only.
func (s *Service) Fetch(ctx context.Context, nx, ny int) error {
	key := cities.GridKey(nx, ny)

	s.store.Begin(key)
	defer s.store.Finish(key)

	if s.provider == nil {
		log.Printf("ERROR: no provider available to fetch forecast for %s", key)
		s.store.Fail(StoreMessage(errNoProvider))
		return errNoProvider
	}

	slice := s.Slice()
	log.Printf("DEBUG: fetching %s base=%s%s fcstTime=%s", key, slice.BaseDate, slice.BaseTime, slice.FcstTime)

	records, err := s.provider.FetchForecast(ctx, nx, ny, slice)
	if err != nil {
		log.Printf("ERROR: provider %s fetch failed for %s: %v", s.provider.Name(), key, err)
		s.store.Fail(StoreMessage(err))
		return err
	}

	grouped := FilterAndGroup(records, slice.FcstTime)
	s.store.Save(key, grouped)
	log.Printf("DEBUG: stored %d categories for %s", len(grouped), key)
	return nil
}
