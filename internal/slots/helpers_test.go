package slots

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/ChatDispatch_Go/internal/chat"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// MockLedger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) GetBalance(ctx context.Context, userID, currencyID string) (int64, error) {
	args := m.Called(ctx, userID, currencyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedger) AdjustBalance(ctx context.Context, userID, currencyID string, delta int64) error {
	args := m.Called(ctx, userID, currencyID, delta)
	return args.Error(0)
}

func (m *MockLedger) GetCurrency(ctx context.Context, currencyID string) (domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	return args.Get(0).(domain.Currency), args.Error(1)
}

// scriptedRoller returns fixed results and records the chance it was given
type scriptedRoller struct {
	mu     sync.Mutex
	rolls  int
	err    error
	chance int
	calls  int
	// entered and release, when set, hold the spin open
	entered chan struct{}
	release chan struct{}
}

func (r *scriptedRoller) Spin(ctx context.Context, _ bool, _ string, chance int, _ string) (int, error) {
	r.mu.Lock()
	r.calls++
	r.chance = chance
	r.mu.Unlock()

	if r.entered != nil {
		close(r.entered)
	}
	if r.release != nil {
		select {
		case <-r.release:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return r.rolls, r.err
}

func (r *scriptedRoller) lastChance() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chance
}

// recordingSender captures outbound chat messages
type recordingSender struct {
	mu   sync.Mutex
	sent []chat.Message
}

func (r *recordingSender) Send(_ context.Context, msg chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.sent))
	for i, m := range r.sent {
		out[i] = m.Text
	}
	return out
}

func (r *recordingSender) last() string {
	texts := r.texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
