// Package dashboard turns store state into what the UI shows and handles chat
// submissions.
package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/i474232898/weather-dashboard/internal/cities"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrEmptyInput is returned for a submission that is blank after trimming.
	ErrEmptyInput = errors.New("empty input")
	// ErrCityNotRecognized is returned when the text names no known city.
	ErrCityNotRecognized = errors.New("city not recognized")
)

// NoticeCityNotFound is the notice shown for an unknown city.
const NoticeCityNotFound = "city not found"

// Scope selects which registry a grid shows.
type Scope string

const (
	ScopeFeatured Scope = "featured"
	ScopeAll      Scope = "all"
)

// ForecastReader is the read side of the forecast store.
type ForecastReader interface {
	Lookup(key, category string) (weather.ForecastRecord, weather.LookupState)
	LoadingKey(key string) bool
}

// Board renders the grid and owns the popup view state. It only reads the
// forecast store and only appends to the message store.
type Board struct {
	featured  *cities.Registry
	all       *cities.Registry
	forecasts ForecastReader
	messages  *store.MessageStore

	mu        sync.Mutex
	popupCity string
	popupOpen bool
}

// NewBoard creates a Board.
func NewBoard(featured, all *cities.Registry, forecasts ForecastReader, messages *store.MessageStore) *Board {
	return &Board{
		featured:  featured,
		all:       all,
		forecasts: forecasts,
		messages:  messages,
	}
}

// Cards returns one card per city of the scope, in registry order.
func (b *Board) Cards(scope Scope) ([]Card, error) {
	var reg *cities.Registry
	switch scope {
	case ScopeFeatured, "":
		reg = b.featured
	case ScopeAll:
		reg = b.all
	default:
		return nil, fmt.Errorf("unknown scope %q", scope)
	}

	list := reg.Cities()
	cards := make([]Card, 0, len(list))
	for _, c := range list {
		f, ready := b.forecastFor(c)
		cards = append(cards, Card{
			City:     c,
			Ready:    ready,
			Loading:  b.forecasts.LoadingKey(c.Key()),
			Forecast: f,
		})
	}
	return cards, nil
}

// Outcome is the result of a chat submission.
type Outcome struct {
	Message store.ChatMessage `json:"message"`
	Popup   *Popup            `json:"popup,omitempty"`
	Notice  string            `json:"notice,omitempty"`
}

// Submit handles chat input. Blank input is ignored with ErrEmptyInput.
// Otherwise the trimmed text is appended as a user message; if it names a
// city exactly, that city's popup opens, else ErrCityNotRecognized is
// returned together with the outcome. The client clears its input either way.
func (b *Board) Submit(text string) (Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Outcome{}, ErrEmptyInput
	}

	out := Outcome{Message: b.messages.AddMessage(text, true)}

	c, ok := b.all.Lookup(text)
	if !ok {
		out.Notice = NoticeCityNotFound
		return out, ErrCityNotRecognized
	}

	b.messages.SetLastCity(c.Name)

	b.mu.Lock()
	b.popupCity = c.Name
	b.popupOpen = true
	b.mu.Unlock()

	p := b.popupFor(c)
	out.Popup = &p
	return out, nil
}

func (b *Board) popupFor(c cities.City) Popup {
	f, ready := b.forecastFor(c)
	return Popup{City: c, Ready: ready, Forecast: f}
}

// Popup returns the open popup with current data, or false when closed.
func (b *Board) Popup() (Popup, bool) {
	b.mu.Lock()
	name, open := b.popupCity, b.popupOpen
	b.mu.Unlock()

	if !open {
		return Popup{}, false
	}
	c, ok := b.all.Lookup(name)
	if !ok {
		return Popup{}, false
	}
	return b.popupFor(c), true
}

// ClosePopup hides the popup.
func (b *Board) ClosePopup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.popupOpen = false
}
