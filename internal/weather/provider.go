package weather

import "context"

// Provider abstracts the upstream forecast source.
type Provider interface {
	Name() string
	// FetchForecast returns every record of the slice's batch for one grid
	// cell. Filtering to the applicable hour is the caller's job.
	FetchForecast(ctx context.Context, nx, ny int, slice TimeSlice) ([]ForecastRecord, error)
}

// Store is the write side of the forecast store. Service is its only caller.
type Store interface {
	Begin(key string)
	Finish(key string)
	Save(key string, grouped GroupedForecast)
	Fail(message string)
}
