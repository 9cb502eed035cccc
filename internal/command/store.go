package command

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// Store persists custom commands. Triggers are unique and compared
// case-insensitively. Writes are visible to the next read.
type Store interface {
	// Find returns domain.ErrNotFound when no command has the trigger
	Find(ctx context.Context, trigger string) (*domain.CommandDefinition, error)
	// Save inserts or replaces the command with the same trigger
	Save(ctx context.Context, cmd domain.CommandDefinition) error
	// Delete returns domain.ErrNotFound when no command has the trigger
	Delete(ctx context.Context, trigger string) error
	List(ctx context.Context, activeOnly bool) ([]domain.CommandDefinition, error)
}

// NormalizeTrigger is the key triggers are compared by
func NormalizeTrigger(trigger string) string {
	return strings.ToLower(strings.TrimSpace(trigger))
}

// MemoryStore keeps commands in a map
type MemoryStore struct {
	mu       sync.RWMutex
	commands map[string]domain.CommandDefinition
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{commands: make(map[string]domain.CommandDefinition)}
}

// Find returns a copy of the stored command
func (s *MemoryStore) Find(_ context.Context, trigger string) (*domain.CommandDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cmd, ok := s.commands[NormalizeTrigger(trigger)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := cmd.Clone()
	return &clone, nil
}

// Save stores a copy of cmd
func (s *MemoryStore) Save(_ context.Context, cmd domain.CommandDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands[NormalizeTrigger(cmd.Trigger)] = cmd.Clone()
	return nil
}

// Delete removes the command
func (s *MemoryStore) Delete(_ context.Context, trigger string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := NormalizeTrigger(trigger)
	if _, ok := s.commands[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.commands, key)
	return nil
}

// List returns commands ordered by trigger
func (s *MemoryStore) List(_ context.Context, activeOnly bool) ([]domain.CommandDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CommandDefinition, 0, len(s.commands))
	for _, cmd := range s.commands {
		if activeOnly && !cmd.Active {
			continue
		}
		out = append(out, cmd.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return NormalizeTrigger(out[i].Trigger) < NormalizeTrigger(out[j].Trigger)
	})
	return out, nil
}
