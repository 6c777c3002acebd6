package store

import (
	"sync"
	"time"
)

// ChatMessage is one transcript entry. Messages are never mutated once added.
type ChatMessage struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsUser    bool      `json:"isUser"`
}

// MessageStore is an append-only chat transcript plus the most recently
// referenced city.
type MessageStore struct {
	mu       sync.RWMutex
	messages []ChatMessage
	lastCity string
	lastID   int64
	now      func() time.Time
}

// NewMessageStore creates an empty MessageStore using now as its clock.
// A nil now uses time.Now.
func NewMessageStore(now func() time.Time) *MessageStore {
	if now == nil {
		now = time.Now
	}
	return &MessageStore{now: now}
}

// AddMessage appends a message. IDs derive from the creation time in
// milliseconds and are bumped when needed to stay strictly increasing.
func (s *MessageStore) AddMessage(text string, isUser bool) ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	id := ts.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	m := ChatMessage{
		ID:        id,
		Text:      text,
		Timestamp: ts,
		IsUser:    isUser,
	}
	s.messages = append(s.messages, m)
	return m
}

// SetLastCity records the most recently referenced city.
func (s *MessageStore) SetLastCity(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCity = name
}

// LastCity returns the most recently referenced city, or "".
func (s *MessageStore) LastCity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastCity
}

// Messages returns the transcript in insertion order.
func (s *MessageStore) Messages() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}
