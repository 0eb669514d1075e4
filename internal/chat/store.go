// Package chat owns the conversation log and the query session state
// machine.
package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmartins/dbchat/internal/models"
)

// Store is the append-only conversation log and the single source of
// truth for the conversation. Messages are never edited or removed once
// appended; a stopped submission gets a new Stopped message rather than
// a mutation of anything already in the log.
type Store struct {
	mu       sync.RWMutex
	messages []models.Message
}

// NewStore creates an empty message store.
func NewStore() *Store {
	return &Store{}
}

// Append adds a message to the end of the log.
func (s *Store) Append(msg models.Message) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
}

// Messages returns a snapshot of the log, oldest first.
func (s *Store) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the log.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Last returns the most recent message and true, or a zero message and
// false when the log is empty.
func (s *Store) Last() (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.messages) == 0 {
		return models.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// newMessage stamps identity and capture time on a message.
func newMessage(role models.Role, kind models.Kind, text string) models.Message {
	return models.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Kind:      kind,
		Text:      text,
		Timestamp: time.Now(),
	}
}
