package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChatDispatch_Go/internal/cooldown"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/event"
	"github.com/osse101/ChatDispatch_Go/internal/roles"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

type gateFixture struct {
	gate      *Gate
	registry  *Registry
	store     *MemoryStore
	manager   Manager
	cooldowns *cooldown.MemoryStore
	clock     *testClock
	sender    *recordingSender
	events    *eventRecorder
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	f := &gateFixture{
		registry: NewRegistry(),
		store:    NewMemoryStore(),
		clock:    &testClock{now: time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)},
		sender:   &recordingSender{},
	}
	bus := event.NewMemoryBus()
	f.events = newEventRecorder(bus)
	f.cooldowns = cooldown.NewMemoryStoreWithClock(f.clock.Now)
	f.manager = NewManager(f.store, f.registry, bus)
	require.NoError(t, f.registry.Register(NewManagementHandler(f.manager)))
	f.gate = NewGate(f.registry, f.store, f.cooldowns, roles.PlatformResolver{}, f.sender, bus, "bot")
	return f
}

func msgFrom(username string, platformRoles []string, text string) domain.ChatMessage {
	return domain.ChatMessage{
		ID:   "m1",
		Text: text,
		User: domain.ChatUser{
			Platform: domain.PlatformTwitch,
			UserID:   "id-" + username,
			Username: username,
			Roles:    platformRoles,
		},
	}
}

func streamerMsg(text string) domain.ChatMessage {
	return msgFrom("streamer", []string{"broadcaster"}, text)
}

func TestGateState_String(t *testing.T) {
	assert.Equal(t, "RESOLVE_TRIGGER", StateResolveTrigger.String())
	assert.Equal(t, "TERMINAL", StateTerminal.String())
	assert.Equal(t, "GateState(42)", GateState(42).String())
}

func TestGate_NoMatch(t *testing.T) {
	f := newGateFixture(t)

	res, err := f.gate.Handle(context.Background(), msgFrom("viewer", nil, "just chatting"))
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Equal(t, StateResolveTrigger, res.HaltedAt)
	assert.Empty(t, f.sender.texts())

	res, err = f.gate.Handle(context.Background(), msgFrom("viewer", nil, "   "))
	require.NoError(t, err)
	assert.Equal(t, StateReceive, res.HaltedAt)
}

func TestGate_ManagementAddThenRun(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)

	res, err := f.gate.Handle(ctx, streamerMsg("!command add !hello Hello, {chat}!"))
	require.NoError(t, err)
	assert.True(t, res.Executed)
	assert.True(t, res.System)
	assert.Equal(t, SubAdd, res.SubCommand)
	assert.Equal(t, "Added command '!hello' with response: Hello, {chat}!", f.sender.last().Text)
	assert.Equal(t, "bot", f.sender.last().Identity)

	res, err = f.gate.Handle(ctx, msgFrom("viewer", nil, "!HELLO everyone"))
	require.NoError(t, err)
	assert.True(t, res.Executed)
	assert.False(t, res.System)
	assert.Equal(t, "Hello, {chat}!", f.sender.last().Text)

	assert.Contains(t, f.events.types(), event.CommandMutated)
	assert.Contains(t, f.events.types(), event.CommandExecuted)
}

func TestGate_PhraseTrigger(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)
	_, err := f.manager.Add(ctx, "good morning", "Morning!", "streamer")
	require.NoError(t, err)

	res, err := f.gate.Handle(ctx, msgFrom("viewer", nil, "well GOOD MORNING, chat"))
	require.NoError(t, err)
	assert.True(t, res.Executed)
	assert.Equal(t, "Morning!", f.sender.last().Text)

	res, err = f.gate.Handle(ctx, msgFrom("viewer", nil, "good morningstar"))
	require.NoError(t, err)
	assert.False(t, res.Matched)
}

func TestGate_ManagementRequiresEditorOrStreamer(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)

	res, err := f.gate.Handle(ctx, msgFrom("sneaky", []string{"mod"}, "!command add !x hi"))
	require.NoError(t, err)
	assert.False(t, res.Executed)
	assert.Equal(t, domain.RejectReasonPermission, res.RejectReason)
	assert.Equal(t, StateCheckPermission, res.HaltedAt)
	assert.Equal(t, "sneaky", f.sender.last().Target)

	// zero side effects
	_, err = f.store.Find(ctx, "!x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []event.Type{event.CommandRejected}, f.events.types())

	res, err = f.gate.Handle(ctx, msgFrom("editor", []string{"editor"}, "!command add !x hi"))
	require.NoError(t, err)
	assert.True(t, res.Executed)
}

func TestGate_GroupRestriction(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)
	_, err := f.manager.Add(ctx, "!secret", "psst", "streamer")
	require.NoError(t, err)
	_, err = f.manager.SetRestriction(ctx, "!secret", "sub", "streamer")
	require.NoError(t, err)

	res, err := f.gate.Handle(ctx, msgFrom("viewer", nil, "!secret"))
	require.NoError(t, err)
	assert.Equal(t, domain.RejectReasonPermission, res.RejectReason)

	res, err = f.gate.Handle(ctx, msgFrom("subby", []string{"subscriber"}, "!secret"))
	require.NoError(t, err)
	assert.True(t, res.Executed)
}

func TestGate_ViewerRestriction(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)
	require.NoError(t, f.store.Save(ctx, domain.CommandDefinition{
		ID:         "mine",
		Trigger:    "!mine",
		Active:     true,
		Permission: domain.Permission{Type: domain.PermissionViewer, Username: "Alice"},
		Effects:    []domain.Effect{{Type: domain.EffectTypeChat, Message: "yours"}},
	}))

	res, err := f.gate.Handle(ctx, msgFrom("bob", nil, "!mine"))
	require.NoError(t, err)
	assert.False(t, res.Executed)

	res, err = f.gate.Handle(ctx, msgFrom("alice", nil, "!mine"))
	require.NoError(t, err)
	assert.True(t, res.Executed)
}

func TestGate_Cooldowns(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)
	_, err := f.manager.Add(ctx, "!hello", "hi", "streamer")
	require.NoError(t, err)
	_, err = f.manager.SetCooldown(ctx, "!hello", "10", "60", "streamer")
	require.NoError(t, err)

	res, err := f.gate.Handle(ctx, msgFrom("alice", nil, "!hello"))
	require.NoError(t, err)
	require.True(t, res.Executed)
	assert.Equal(t, StateArmCooldown, res.HaltedAt)

	// global window blocks everyone
	res, err = f.gate.Handle(ctx, msgFrom("bob", nil, "!hello"))
	require.NoError(t, err)
	assert.Equal(t, domain.RejectReasonCooldown, res.RejectReason)
	assert.Equal(t, "bob, !hello is still on cooldown for: 10 seconds", f.sender.last().Text)

	// after the global window only the per-user window remains
	f.clock.now = f.clock.now.Add(11 * time.Second)
	res, err = f.gate.Handle(ctx, msgFrom("bob", nil, "!hello"))
	require.NoError(t, err)
	assert.True(t, res.Executed)

	f.clock.now = f.clock.now.Add(11 * time.Second)
	res, err = f.gate.Handle(ctx, msgFrom("alice", nil, "!hello"))
	require.NoError(t, err)
	assert.Equal(t, domain.RejectReasonCooldown, res.RejectReason)
	assert.Equal(t, "alice, !hello is still on cooldown for: 38 seconds", f.sender.last().Text)
}

type failingHandler struct{ calls int }

func (h *failingHandler) Definition() domain.CommandDefinition {
	return domain.CommandDefinition{
		ID:       "system:fail",
		Trigger:  "!fail",
		Active:   true,
		Cooldown: domain.Cooldown{User: 30},
	}
}

func (h *failingHandler) Execute(context.Context, *Invocation) error {
	h.calls++
	return errors.New("boom")
}

func TestGate_FailedExecuteDoesNotArmCooldown(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)
	h := &failingHandler{}
	require.NoError(t, f.registry.Register(h))

	for i := 0; i < 2; i++ {
		res, err := f.gate.Handle(ctx, msgFrom("alice", nil, "!fail"))
		require.Error(t, err)
		assert.False(t, res.Executed)
	}
	assert.Equal(t, 2, h.calls)
	assert.Equal(t, 0, f.cooldowns.Len())
}

type countingHandler struct{ calls atomic.Int32 }

func (h *countingHandler) Definition() domain.CommandDefinition {
	return domain.CommandDefinition{
		ID:       "system:count",
		Trigger:  "!count",
		Active:   true,
		Cooldown: domain.Cooldown{Global: 30},
	}
}

func (h *countingHandler) Execute(context.Context, *Invocation) error {
	h.calls.Add(1)
	return nil
}

func TestGate_ConcurrentInvocationsShareOneGlobalWindow(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)
	h := &countingHandler{}
	require.NoError(t, f.registry.Register(h))

	const viewers = 40
	var wg sync.WaitGroup
	var rejected atomic.Int32
	for i := 0; i < viewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.gate.Handle(ctx, msgFrom(fmt.Sprintf("viewer%d", i), nil, "!count"))
			if err == nil && res.RejectReason == domain.RejectReasonCooldown {
				rejected.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), h.calls.Load())
	assert.Equal(t, int32(viewers-1), rejected.Load())
}

func TestGate_UserWindowRejectLeavesGlobalFree(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)
	_, err := f.manager.Add(ctx, "!hello", "hi", "streamer")
	require.NoError(t, err)
	_, err = f.manager.SetCooldown(ctx, "!hello", "10", "60", "streamer")
	require.NoError(t, err)

	res, err := f.gate.Handle(ctx, msgFrom("alice", nil, "!hello"))
	require.NoError(t, err)
	require.True(t, res.Executed)

	f.clock.now = f.clock.now.Add(11 * time.Second)
	res, err = f.gate.Handle(ctx, msgFrom("alice", nil, "!hello"))
	require.NoError(t, err)
	assert.Equal(t, domain.RejectReasonCooldown, res.RejectReason)

	res, err = f.gate.Handle(ctx, msgFrom("bob", nil, "!hello"))
	require.NoError(t, err)
	assert.True(t, res.Executed)
}

func TestGate_SubCommandFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)
	require.NoError(t, f.store.Save(ctx, domain.CommandDefinition{
		ID:      "subs",
		Trigger: "!roll",
		Active:  true,
		SubCommands: []domain.SubCommand{
			{ID: "digits", Arg: `\d+`, Regex: true},
			{ID: "exact", Arg: "20"},
		},
	}))

	res, err := f.gate.Handle(ctx, msgFrom("alice", nil, "!roll 20"))
	require.NoError(t, err)
	assert.Equal(t, "digits", res.SubCommand)

	res, err = f.gate.Handle(ctx, msgFrom("alice", nil, "!roll 20x"))
	require.NoError(t, err)
	assert.Empty(t, res.SubCommand)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	h := &failingHandler{}

	require.NoError(t, r.Register(h))
	assert.ErrorIs(t, r.Register(h), domain.ErrConflict)
	assert.True(t, r.IsReserved("!FAIL"))
	assert.Len(t, r.Definitions(), 1)

	assert.True(t, r.Unregister("!fail"))
	assert.False(t, r.Unregister("!fail"))
	assert.False(t, r.IsReserved("!fail"))
}
