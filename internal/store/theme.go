package store

import (
	"errors"
	"sync"
)

// Theme is a dashboard colour scheme.
type Theme string

const (
	ThemeForest Theme = "forest"
	ThemeSea    Theme = "sea"
	ThemeWarm   Theme = "warm"
)

// ErrInvalidTheme is returned for a theme outside forest, sea and warm.
var ErrInvalidTheme = errors.New("invalid theme")

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeForest, ThemeSea, ThemeWarm:
		return true
	}
	return false
}

// ThemeStore holds the current theme. It is not persisted.
type ThemeStore struct {
	mu    sync.RWMutex
	theme Theme
}

// NewThemeStore starts on the forest theme.
func NewThemeStore() *ThemeStore {
	return &ThemeStore{theme: ThemeForest}
}

func (s *ThemeStore) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *ThemeStore) SetTheme(t Theme) error {
	if !t.Valid() {
		return ErrInvalidTheme
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	return nil
}
