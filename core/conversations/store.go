package conversations

import (
	"sync"

	"github.com/jinzhu/copier"
)

var _ ReadOnlyV0 = (*Store)(nil)

// Store is the append-only transcript of a session. There is no way to remove
// or reorder recorded turns.
type Store struct {
	mu    sync.RWMutex
	turns []Turn
}

func NewStore() *Store {
	return &Store{}
}

// Append adds turn to the end of the transcript.
func (s *Store) Append(turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, turn)
}

// Snapshot returns an independent copy of the transcript, oldest turn first.
func (s *Store) Snapshot() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]Turn, 0, len(s.turns))
	if err := copier.CopyWithOption(&snapshot, &s.turns, copier.Option{DeepCopy: true}); err != nil {
		snapshot = append(snapshot[:0], s.turns...)
	}
	return snapshot
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.turns)
}
