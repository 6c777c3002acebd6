package dashboard

import (
	"github.com/i474232898/weather-dashboard/internal/cities"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// placeholders are shown for categories without a value.
var placeholders = map[string]string{
	weather.CategoryTMP: "--",
	weather.CategorySKY: weather.SkyClear,
	weather.CategoryPTY: weather.PrecipNone,
	weather.CategoryPOP: "0",
	weather.CategoryREH: "--",
	weather.CategoryWSD: "--",
}

// Reading is one displayed value and where it came from. Value holds a
// placeholder unless State is present.
type Reading struct {
	Value string              `json:"value"`
	State weather.LookupState `json:"state"`
}

// Forecast is the displayed forecast of one city.
type Forecast struct {
	Temperature              Reading           `json:"temperature"`
	Sky                      Reading           `json:"sky"`
	PrecipitationType        Reading           `json:"precipitationType"`
	PrecipitationProbability Reading           `json:"precipitationProbability"`
	Humidity                 Reading           `json:"humidity"`
	WindSpeed                Reading           `json:"windSpeed"`
	Condition                weather.Condition `json:"condition"`
	Summary                  string            `json:"summary"`
}

// Card is one tile of the city grid.
type Card struct {
	cities.City
	Ready    bool     `json:"ready"`
	Loading  bool     `json:"loading"`
	Forecast Forecast `json:"forecast"`
}

// Popup is the detail view opened from the chat box.
type Popup struct {
	City     cities.City `json:"city"`
	Ready    bool        `json:"ready"`
	Forecast Forecast    `json:"forecast"`
}

func (b *Board) reading(key, category string) Reading {
	r, state := b.forecasts.Lookup(key, category)
	if state == weather.StatePresent && r.FcstValue != "" {
		return Reading{Value: r.FcstValue, State: state}
	}
	if state == weather.StatePresent {
		state = weather.StateAbsent
	}
	return Reading{Value: placeholders[category], State: state}
}

// forecastFor builds the view and reports whether anything is stored for c.
func (b *Board) forecastFor(c cities.City) (Forecast, bool) {
	key := c.Key()
	f := Forecast{
		Temperature:              b.reading(key, weather.CategoryTMP),
		Sky:                      b.reading(key, weather.CategorySKY),
		PrecipitationType:        b.reading(key, weather.CategoryPTY),
		PrecipitationProbability: b.reading(key, weather.CategoryPOP),
		Humidity:                 b.reading(key, weather.CategoryREH),
		WindSpeed:                b.reading(key, weather.CategoryWSD),
	}
	f.Condition = weather.Describe(f.Sky.Value, f.PrecipitationType.Value)
	f.Summary = f.Condition.Sky
	if f.Condition.Precip != "" {
		f.Summary += " (" + f.Condition.Precip + ")"
	}

	_, state := b.forecasts.Lookup(key, weather.CategoryTMP)
	return f, state != weather.StatePending
}
