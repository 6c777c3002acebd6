package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// RateLimitedProvider wraps a weather.Provider with a token bucket.
type RateLimitedProvider struct {
	provider weather.Provider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedProvider allows rps requests per second with the given burst.
// A burst below one is raised to one.
func NewRateLimitedProvider(provider weather.Provider, rps float64, burst int) *RateLimitedProvider {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [rate limited]", provider.Name()),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.name
}

// FetchForecast waits for the limiter before forwarding the call.
func (r *RateLimitedProvider) FetchForecast(ctx context.Context, nx, ny int, slice weather.TimeSlice) ([]weather.ForecastRecord, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &weather.TransportError{Err: fmt.Errorf("rate limit wait canceled: %w", err)}
	}
	return r.provider.FetchForecast(ctx, nx, ny, slice)
}

var (
	_ weather.Provider = (*KMAProvider)(nil)
	_ weather.Provider = (*RateLimitedProvider)(nil)
)
