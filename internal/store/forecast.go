package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrNotFound is returned when no forecast is stored for a grid cell.
	ErrNotFound = errors.New("no forecast data for grid cell")
)

// ForecastStore holds the latest grouped forecast per grid cell together with
// loading state and the last fetch error. It is safe for concurrent use.
// Entries are only ever replaced, never removed.
type ForecastStore struct {
	mu sync.RWMutex

	// key: "nx-ny"
	data map[string]weather.GroupedForecast

	inFlight map[string]int
	pending  int
	lastErr  string
}

// NewForecastStore creates an empty ForecastStore.
func NewForecastStore() *ForecastStore {
	return &ForecastStore{
		data:     make(map[string]weather.GroupedForecast),
		inFlight: make(map[string]int),
	}
}

// Begin marks a fetch for key as in flight.
func (s *ForecastStore) Begin(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight[key]++
	s.pending++
}

// Finish marks one fetch for key as done.
func (s *ForecastStore) Finish(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[key] <= 1 {
		delete(s.inFlight, key)
	} else {
		s.inFlight[key]--
	}
	if s.pending > 0 {
		s.pending--
	}
}

// Save replaces the entry for key and clears the last error. Other keys are untouched.
func (s *ForecastStore) Save(key string, grouped weather.GroupedForecast) {
	c := grouped.Clone()
	if c == nil {
		c = make(weather.GroupedForecast)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = c
	s.lastErr = ""
}

// Fail records message as the shared error. Stored data is not touched.
func (s *ForecastStore) Fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = message
}

// Grouped returns a copy of the forecast stored for key.
func (s *ForecastStore) Grouped(key string) (weather.GroupedForecast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return g.Clone(), nil
}

// Snapshot returns a copy of every stored forecast.
func (s *ForecastStore) Snapshot() map[string]weather.GroupedForecast {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]weather.GroupedForecast, len(s.data))
	for k, g := range s.data {
		out[k] = g.Clone()
	}
	return out
}

// Lookup returns the first record of category for key and whether it is
// present, pending (nothing stored for key) or absent from the stored hour.
func (s *ForecastStore) Lookup(key, category string) (weather.ForecastRecord, weather.LookupState) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.data[key]
	if !ok {
		return weather.ForecastRecord{}, weather.StatePending
	}
	r, ok := g.First(category)
	if !ok {
		return weather.ForecastRecord{}, weather.StateAbsent
	}
	return r, weather.StatePresent
}

// Loading reports whether any fetch is in flight.
func (s *ForecastStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending > 0
}

// LoadingKey reports whether a fetch for key is in flight.
func (s *ForecastStore) LoadingKey(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight[key] > 0
}

// LoadingKeys lists the keys with a fetch in flight, sorted.
func (s *ForecastStore) LoadingKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.inFlight))
	for k := range s.inFlight {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Err returns the last fetch error message, or "" if the last outcome was a success.
func (s *ForecastStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

var _ weather.Store = (*ForecastStore)(nil)
