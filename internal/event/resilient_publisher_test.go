package event

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// mockBus is a test double for event.Bus
type mockBus struct {
	mu         sync.Mutex
	calls      []Event
	shouldFail func(attempt int) bool
}

func (m *mockBus) Publish(ctx context.Context, evt Event) error {
	m.mu.Lock()
	m.calls = append(m.calls, evt)
	callCount := len(m.calls)
	m.mu.Unlock()

	if m.shouldFail != nil && m.shouldFail(callCount) {
		return errors.New("mock publish error")
	}
	return nil
}

func (m *mockBus) Subscribe(eventType Type, handler Handler) {}

func (m *mockBus) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func testEvent() Event {
	return NewCommandMutatedEvent("!hello", domain.MutationAdd, "mod")
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	bus := &mockBus{}
	rp := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 3, RetryDelay: 10 * time.Millisecond})

	require.NoError(t, rp.Publish(context.Background(), testEvent()))
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 1, bus.CallCount())
}

func TestResilientPublisher_RetrySuccess(t *testing.T) {
	bus := &mockBus{shouldFail: func(attempt int) bool { return attempt == 1 }}
	rp := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 3, RetryDelay: 10 * time.Millisecond})

	require.NoError(t, rp.Publish(context.Background(), testEvent()))

	assert.Eventually(t, func() bool { return bus.CallCount() == 2 }, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))
}

func TestResilientPublisher_RetryExhaustionDeadLetters(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	defer dl.Close()

	bus := &mockBus{shouldFail: func(int) bool { return true }}
	rp := NewResilientPublisher(bus, ResilientConfig{
		MaxRetries: 3,
		RetryDelay: 5 * time.Millisecond,
		DeadLetter: dl,
	})

	require.NoError(t, rp.Publish(context.Background(), testEvent()))

	// initial attempt + 3 retries
	assert.Eventually(t, func() bool { return bus.CallCount() == 4 }, 2*time.Second, 5*time.Millisecond)

	var entry DeadLetterEntry
	assert.Eventually(t, func() bool {
		content, readErr := os.ReadFile(path)
		if readErr != nil || len(content) == 0 {
			return false
		}
		line := strings.TrimSpace(string(content))
		return json.Unmarshal([]byte(line), &entry) == nil
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, CommandMutated, entry.Event.Type)
	assert.Equal(t, 3, entry.Attempts)
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
	assert.NotEmpty(t, entry.LastError)
	require.NoError(t, rp.Shutdown(context.Background()))
}

func TestResilientPublisher_ShutdownAbandonsPendingRetries(t *testing.T) {
	bus := &mockBus{shouldFail: func(int) bool { return true }}
	rp := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 5, RetryDelay: time.Hour})

	require.NoError(t, rp.Publish(context.Background(), testEvent()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	assert.Equal(t, 1, bus.CallCount())
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	bus := &mockBus{}
	rp := NewResilientPublisher(bus, ResilientConfig{})

	const goroutines = 10
	const perGoroutine = 5

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				_ = rp.Publish(context.Background(), testEvent())
			}
		}()
	}
	wg.Wait()

	require.NoError(t, rp.Shutdown(context.Background()))
	assert.Equal(t, goroutines*perGoroutine, bus.CallCount())
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
}
