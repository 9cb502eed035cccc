package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChatDispatch_Go/internal/cooldown"
	"github.com/osse101/ChatDispatch_Go/internal/currency"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/event"
	"github.com/osse101/ChatDispatch_Go/internal/roles"
)

var points = domain.Currency{ID: "points", Name: "Points"}

var alice = domain.ChatUser{Platform: domain.PlatformTwitch, UserID: "u1", Username: "alice"}

type fixture struct {
	svc       Service
	ledger    *currency.MemoryLedger
	roller    *scriptedRoller
	sender    *recordingSender
	cooldowns *cooldown.MemoryStore
	clock     *testClock
	events    []event.Event
}

func testSettings() domain.SlotsSettings {
	s := domain.DefaultSlotsSettings()
	s.CurrencyID = points.ID
	s.Multiplier = 1.5
	s.Messages.ShowSpinInAction = false
	return s
}

func newFixture(t *testing.T, settings domain.SlotsSettings, resolver roles.Resolver) *fixture {
	t.Helper()

	f := &fixture{
		ledger: currency.NewMemoryLedger(points),
		roller: &scriptedRoller{},
		sender: &recordingSender{},
		clock:  &testClock{now: time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)},
	}
	f.cooldowns = cooldown.NewMemoryStoreWithClock(f.clock.Now)

	bus := event.NewMemoryBus()
	for _, typ := range []event.Type{event.SlotsCompleted, event.SlotsAborted} {
		bus.Subscribe(typ, func(_ context.Context, evt event.Event) error {
			f.events = append(f.events, evt)
			return nil
		})
	}
	if resolver == nil {
		resolver = roles.PlatformResolver{}
	}
	f.svc = NewService(f.ledger, resolver, f.roller, f.sender, f.cooldowns, bus, settings, time.Second)
	return f
}

func (f *fixture) fund(t *testing.T, userID string, amount int64) {
	t.Helper()
	require.NoError(t, f.ledger.AdjustBalance(context.Background(), userID, points.ID, amount))
}

func (f *fixture) balance(t *testing.T, userID string) int64 {
	t.Helper()
	b, err := f.ledger.GetBalance(context.Background(), userID, points.ID)
	require.NoError(t, err)
	return b
}

func TestWinnings(t *testing.T) {
	tests := []struct {
		name       string
		wager      int64
		rolls      int
		multiplier float64
		want       int64
	}{
		{"two hits", 10, 2, 1.5, 30},
		{"no hits", 10, 0, 1.5, 0},
		{"floors fractions", 7, 1, 1.5, 10},
		{"jackpot", 100, 3, 2, 600},
		{"zero multiplier", 100, 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Winnings(tt.wager, tt.rolls, tt.multiplier))
		})
	}
}

func TestSpin_Success(t *testing.T) {
	f := newFixture(t, testSettings(), nil)
	f.fund(t, alice.UserID, 100)
	f.roller.rolls = 2

	out, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(30), out.Winnings)
	assert.Equal(t, 2, out.SuccessfulRolls)
	assert.Equal(t, domain.DefaultSuccessChance, out.SuccessChance)
	assert.Equal(t, "Points", out.CurrencyName)
	assert.Equal(t, "alice hit 2 out of 3 and won 30 Points!", out.Message)
	assert.Equal(t, int64(120), f.balance(t, alice.UserID))
	assert.Equal(t, out.Message, f.sender.last())

	require.Len(t, f.events, 1)
	assert.Equal(t, event.SlotsCompleted, f.events[0].Type)
	payload, ok := f.events[0].Payload.(domain.SlotsCompletedPayload)
	require.True(t, ok)
	assert.Equal(t, int64(30), payload.Winnings)
}

func TestSpin_NoWinningsSkipsCredit(t *testing.T) {
	f := newFixture(t, testSettings(), nil)
	f.fund(t, alice.UserID, 100)
	f.roller.rolls = 0

	out, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 40})
	require.NoError(t, err)
	assert.Zero(t, out.Winnings)
	assert.Equal(t, int64(60), f.balance(t, alice.UserID))
}

func TestSpin_InsufficientFunds(t *testing.T) {
	ledger := &MockLedger{}
	ledger.On("GetBalance", mock.Anything, alice.UserID, points.ID).Return(int64(50), nil)

	sender := &recordingSender{}
	clk := &testClock{now: time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)}
	cds := cooldown.NewMemoryStoreWithClock(clk.Now)
	roller := &scriptedRoller{}
	svc := NewService(ledger, roles.PlatformResolver{}, roller, sender, cds, nil, testSettings(), time.Second)

	_, err := svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 100})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, "alice, you don't have enough to wager this amount!", sender.last())

	ledger.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Zero(t, roller.calls)
	assert.Zero(t, cds.Len(), "a rejected wager must not consume the cooldown")

	// the session was released
	_, err = svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 100})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestSpin_BalanceFetchFailureFailsClosed(t *testing.T) {
	ledger := &MockLedger{}
	ledger.On("GetBalance", mock.Anything, alice.UserID, points.ID).Return(int64(0), errors.New("connection reset"))

	sender := &recordingSender{}
	svc := NewService(ledger, nil, &scriptedRoller{}, sender, cooldown.NewMemoryStore(), nil, testSettings(), time.Second)

	_, err := svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 1})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	ledger.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSpin_LedgerTimeout(t *testing.T) {
	ledger := &MockLedger{}
	ledger.On("GetBalance", mock.Anything, alice.UserID, points.ID).Return(int64(1000), nil)
	ledger.On("AdjustBalance", mock.Anything, alice.UserID, points.ID, int64(-10)).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(context.DeadlineExceeded)

	sender := &recordingSender{}
	svc := NewService(ledger, nil, &scriptedRoller{}, sender, cooldown.NewMemoryStore(), nil, testSettings(), 20*time.Millisecond)

	_, err := svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	require.ErrorIs(t, err, domain.ErrLedger)
	assert.Contains(t, err.Error(), domain.ErrMsgLedgerTimeout)
}

func TestSpin_DebitFailure(t *testing.T) {
	ledger := &MockLedger{}
	ledger.On("GetBalance", mock.Anything, alice.UserID, points.ID).Return(int64(1000), nil)
	ledger.On("AdjustBalance", mock.Anything, alice.UserID, points.ID, int64(-100)).Return(errors.New("db down"))

	sender := &recordingSender{}
	clk := &testClock{now: time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)}
	cds := cooldown.NewMemoryStoreWithClock(clk.Now)
	roller := &scriptedRoller{}
	bus := event.NewMemoryBus()
	var aborted []domain.SlotsAbortedPayload
	bus.Subscribe(event.SlotsAborted, func(_ context.Context, evt event.Event) error {
		aborted = append(aborted, evt.Payload.(domain.SlotsAbortedPayload))
		return nil
	})
	svc := NewService(ledger, nil, roller, sender, cds, bus, testSettings(), time.Second)

	_, err := svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 100})
	require.ErrorIs(t, err, domain.ErrLedger)
	assert.Contains(t, sender.last(), "there was an error deducting currency")
	assert.Zero(t, roller.calls)

	require.Len(t, aborted, 1)
	assert.Equal(t, domain.AbortStageDebit, aborted[0].Stage)

	remaining, err := cds.Remaining(context.Background(), CooldownKey(alice.UserID))
	require.NoError(t, err)
	assert.Positive(t, remaining, "the cooldown is armed before the debit")

	// the session lock is released even though the spin failed
	clk.Advance(remaining + time.Second)
	_, err = svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 100})
	require.ErrorIs(t, err, domain.ErrLedger)
	assert.NotErrorIs(t, err, domain.ErrConcurrency)
	assert.NotErrorIs(t, err, domain.ErrOnCooldown)
	assert.Equal(t, 0, svc.(*service).sessions.Len())
}

func TestSpin_RollFailureRefunds(t *testing.T) {
	f := newFixture(t, testSettings(), nil)
	f.fund(t, alice.UserID, 100)
	f.roller.err = errors.New("reel stuck")

	_, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 25})
	require.ErrorIs(t, err, domain.ErrLedger)
	assert.Equal(t, int64(100), f.balance(t, alice.UserID))
	assert.Contains(t, f.sender.last(), "refunded")

	require.Len(t, f.events, 1)
	assert.Equal(t, event.SlotsAborted, f.events[0].Type)
}

func TestSpin_CreditFailure(t *testing.T) {
	ledger := &MockLedger{}
	ledger.On("GetBalance", mock.Anything, alice.UserID, points.ID).Return(int64(1000), nil)
	ledger.On("AdjustBalance", mock.Anything, alice.UserID, points.ID, int64(-10)).Return(nil)
	ledger.On("AdjustBalance", mock.Anything, alice.UserID, points.ID, int64(45)).Return(errors.New("db down"))

	sender := &recordingSender{}
	svc := NewService(ledger, nil, &scriptedRoller{rolls: 3}, sender, cooldown.NewMemoryStore(), nil, testSettings(), time.Second)

	_, err := svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	require.ErrorIs(t, err, domain.ErrLedger)
	assert.Contains(t, sender.last(), "paying out your winnings")
	ledger.AssertExpectations(t)
}

func TestSpin_CurrencyNameFallsBackToID(t *testing.T) {
	ledger := &MockLedger{}
	ledger.On("GetBalance", mock.Anything, alice.UserID, points.ID).Return(int64(1000), nil)
	ledger.On("AdjustBalance", mock.Anything, alice.UserID, points.ID, mock.Anything).Return(nil)
	ledger.On("GetCurrency", mock.Anything, points.ID).Return(domain.Currency{}, errors.New("gone"))

	svc := NewService(ledger, nil, &scriptedRoller{rolls: 1}, &recordingSender{}, cooldown.NewMemoryStore(), nil, testSettings(), time.Second)

	out, err := svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, points.ID, out.CurrencyName)
}

func TestSpin_Bounds(t *testing.T) {
	settings := testSettings()
	settings.MinWager = 5
	settings.MaxWager = 100

	tests := []struct {
		name    string
		amount  int64
		wantErr error
		reply   string
	}{
		{"zero", 0, domain.ErrValidation, "alice, your wager amount must be more than 0."},
		{"negative", -4, domain.ErrValidation, "alice, your wager amount must be more than 0."},
		{"below minimum", 3, domain.ErrWagerBounds, "alice, your wager amount must be at least 5."},
		{"above maximum", 101, domain.ErrWagerBounds, "alice, your wager amount can be no more than 100."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, settings, nil)
			f.fund(t, alice.UserID, 1000)

			_, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: tt.amount})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.reply, f.sender.last())
			assert.Equal(t, int64(1000), f.balance(t, alice.UserID))
		})
	}

	t.Run("limits are inclusive", func(t *testing.T) {
		f := newFixture(t, settings, nil)
		f.fund(t, alice.UserID, 1000)
		_, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 5})
		require.NoError(t, err)

		f.clock.Advance(time.Minute)
		_, err = f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 100})
		require.NoError(t, err)
	})
}

func TestSpin_Cooldown(t *testing.T) {
	f := newFixture(t, testSettings(), nil)
	f.fund(t, alice.UserID, 100)

	_, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	require.NoError(t, err)

	f.clock.Advance(12 * time.Second)
	_, err = f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	require.ErrorIs(t, err, domain.ErrOnCooldown)

	var cdErr cooldown.ErrOnCooldown
	require.ErrorAs(t, err, &cdErr)
	assert.Greater(t, cdErr.Remaining, time.Duration(0))
	assert.LessOrEqual(t, cdErr.Remaining, 30*time.Second)
	assert.Equal(t, "alice, your slot machine is currently on cooldown. Time remaining: 18 seconds", f.sender.last())

	f.clock.Advance(18 * time.Second)
	_, err = f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	assert.NoError(t, err)
}

func TestSpin_ZeroCooldownNeverArms(t *testing.T) {
	settings := testSettings()
	settings.CooldownSeconds = 0
	f := newFixture(t, settings, nil)
	f.fund(t, alice.UserID, 100)

	for i := 0; i < 3; i++ {
		_, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
		require.NoError(t, err)
	}
	assert.Zero(t, f.cooldowns.Len())
}

func TestSpin_RoleOverrideFirstMatchWins(t *testing.T) {
	settings := testSettings()
	settings.RoleOverrides = []domain.RoleOverride{
		{RoleID: "whale", Percent: 95},
		{RoleID: domain.RoleIDVIP, Percent: 70},
		{RoleID: domain.RoleIDSubscriber, Percent: 90},
	}
	f := newFixture(t, settings, nil)
	f.fund(t, "u2", 100)

	bob := domain.ChatUser{Platform: domain.PlatformTwitch, UserID: "u2", Username: "bob", Roles: []string{"subscriber", "vip"}}
	out, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: bob, Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, 70, out.SuccessChance)
	assert.Equal(t, 70, f.roller.lastChance())
}

func TestSpin_RoleOverrideFromCustomRoles(t *testing.T) {
	store := roles.NewMemoryRoles()
	store.AddMember(domain.Role{ID: "lucky", Name: "Lucky"}, "alice")

	settings := testSettings()
	settings.RoleOverrides = []domain.RoleOverride{{RoleID: "lucky", Percent: 100}}
	resolver := roles.Union(roles.PlatformResolver{}, roles.NewCustomResolver(store))

	f := newFixture(t, settings, resolver)
	f.fund(t, alice.UserID, 100)

	out, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, 100, out.SuccessChance)
}

func TestSpin_NoOverrideUsesBase(t *testing.T) {
	settings := testSettings()
	settings.BasePercent = 35
	settings.RoleOverrides = []domain.RoleOverride{{RoleID: domain.RoleIDMod, Percent: 80}}
	f := newFixture(t, settings, nil)
	f.fund(t, alice.UserID, 100)

	out, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, 35, out.SuccessChance)
}

func TestSpin_OneSpinPerUser(t *testing.T) {
	f := newFixture(t, testSettings(), nil)
	f.fund(t, alice.UserID, 100)
	f.roller.entered = make(chan struct{})
	f.roller.release = make(chan struct{})
	f.roller.rolls = 1

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
		done <- err
	}()
	<-f.roller.entered

	_, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	require.ErrorIs(t, err, domain.ErrConcurrency)
	assert.Equal(t, "alice, your slot machine is actively working!", f.sender.last())

	close(f.roller.release)
	require.NoError(t, <-done)
	// only the first wager moved money: 100 - 10 + 15
	assert.Equal(t, int64(105), f.balance(t, alice.UserID))
}

func TestPurgeCaches(t *testing.T) {
	f := newFixture(t, testSettings(), nil)
	f.fund(t, alice.UserID, 100)

	_, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	require.NoError(t, err)
	require.Equal(t, 1, f.cooldowns.Len())

	require.NoError(t, f.svc.PurgeCaches(context.Background()))
	assert.Zero(t, f.cooldowns.Len())

	_, err = f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	assert.NoError(t, err)
}

func TestPurgeCaches_DuringSpinKeepsNewSession(t *testing.T) {
	f := newFixture(t, testSettings(), nil)
	f.fund(t, alice.UserID, 100)
	f.roller.entered = make(chan struct{})
	f.roller.release = make(chan struct{})
	f.roller.rolls = 1

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan error, 1)
	go func() {
		_, err := f.svc.Spin(firstCtx, domain.SpinRequest{User: alice, Amount: 10})
		firstDone <- err
	}()
	<-f.roller.entered

	require.NoError(t, f.svc.PurgeCaches(context.Background()))

	secondEntered := make(chan struct{})
	f.roller.entered = secondEntered
	secondDone := make(chan error, 1)
	go func() {
		_, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
		secondDone <- err
	}()
	<-secondEntered

	// the purged spin finishes while the second one is still rolling
	cancelFirst()
	<-firstDone
	assert.True(t, f.svc.(*service).sessions.Active(alice.UserID))

	_, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	require.ErrorIs(t, err, domain.ErrConcurrency)

	close(f.roller.release)
	require.NoError(t, <-secondDone)
	assert.False(t, f.svc.(*service).sessions.Active(alice.UserID))
}

func TestUpdateSettings(t *testing.T) {
	f := newFixture(t, testSettings(), nil)
	f.fund(t, alice.UserID, 100)

	next := testSettings()
	next.MaxWager = 5
	f.svc.UpdateSettings(next)
	assert.Equal(t, int64(5), f.svc.Settings().MaxWager)

	_, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
	assert.ErrorIs(t, err, domain.ErrWagerBounds)
}

func TestShutdown_WaitsForSpins(t *testing.T) {
	f := newFixture(t, testSettings(), nil)
	f.fund(t, alice.UserID, 100)
	f.roller.entered = make(chan struct{})
	f.roller.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Spin(context.Background(), domain.SpinRequest{User: alice, Amount: 10})
		done <- err
	}()
	<-f.roller.entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, f.svc.Shutdown(ctx), context.DeadlineExceeded)

	close(f.roller.release)
	require.NoError(t, <-done)
	assert.NoError(t, f.svc.Shutdown(context.Background()))
}
