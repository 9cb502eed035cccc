package slots

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/osse101/ChatDispatch_Go/internal/chat"
	"github.com/osse101/ChatDispatch_Go/internal/concurrency"
	"github.com/osse101/ChatDispatch_Go/internal/cooldown"
	"github.com/osse101/ChatDispatch_Go/internal/currency"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/event"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
	"github.com/osse101/ChatDispatch_Go/internal/roles"
)

// Service runs wagers on the slot machine
type Service interface {
	// Spin validates, debits, rolls and credits one wager. Every rejection is
	// answered in chat and returned as a typed error.
	Spin(ctx context.Context, req domain.SpinRequest) (*domain.SpinOutcome, error)

	// Settings returns the active settings
	Settings() domain.SlotsSettings

	// UpdateSettings swaps the active settings for later spins
	UpdateSettings(settings domain.SlotsSettings)

	// PurgeCaches clears every spin cooldown and in-flight session
	PurgeCaches(ctx context.Context) error

	Shutdown(ctx context.Context) error
}

type service struct {
	ledger        currency.Ledger
	roles         roles.Resolver
	roller        RollEngine
	sender        chat.Sender
	cooldowns     cooldown.Service
	bus           event.Bus
	sessions      *concurrency.SessionMap
	ledgerTimeout time.Duration

	mu       sync.RWMutex
	settings domain.SlotsSettings

	wg sync.WaitGroup
}

// NewService creates the wager engine. bus may be nil.
func NewService(
	ledger currency.Ledger,
	resolver roles.Resolver,
	roller RollEngine,
	sender chat.Sender,
	cooldowns cooldown.Service,
	bus event.Bus,
	settings domain.SlotsSettings,
	ledgerTimeout time.Duration,
) Service {
	if ledgerTimeout <= 0 {
		ledgerTimeout = DefaultLedgerTimeout
	}
	return &service{
		ledger:        ledger,
		roles:         resolver,
		roller:        roller,
		sender:        sender,
		cooldowns:     cooldowns,
		bus:           bus,
		sessions:      concurrency.NewSessionMap(),
		ledgerTimeout: ledgerTimeout,
		settings:      settings,
	}
}

// CooldownKey is the key a user's spin cooldown is stored under
func CooldownKey(userID string) string {
	return cooldown.UserKey(cooldownAction, userID)
}

func (s *service) Settings() domain.SlotsSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *service) UpdateSettings(settings domain.SlotsSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

func (s *service) Spin(ctx context.Context, req domain.SpinRequest) (*domain.SpinOutcome, error) {
	s.wg.Add(1)
	defer s.wg.Done()

	settings := s.Settings()
	msgs := settings.Messages
	user := req.User
	log := logger.FromContext(ctx).With(logger.AttrKeyUserID, user.UserID, "wager", req.Amount)

	// 1. one spin at a time per user; the session is held until we return
	session, ok := s.sessions.TryAcquire(user.UserID)
	if !ok {
		s.say(ctx, settings, renderUser(msgs.AlreadySpinning, user.Username))
		log.Debug(LogMsgSpinRejected, "reason", domain.ErrMsgSpinInProgress)
		return nil, fmt.Errorf(ErrFmtWithDetail, domain.ErrConcurrency, user.UserID)
	}
	defer s.sessions.Release(user.UserID, session)

	// 2. cooldown
	remaining, err := s.cooldowns.Remaining(ctx, CooldownKey(user.UserID))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCooldownFailed, err)
	}
	if remaining > 0 {
		s.say(ctx, settings, renderCooldown(msgs, user.Username, remaining))
		log.Debug(LogMsgSpinRejected, "reason", domain.ErrMsgOnCooldown, "remaining", remaining)
		return nil, cooldown.ErrOnCooldown{Action: TriggerSpin, Remaining: remaining}
	}

	// 3. amount and bounds
	if err := s.checkBounds(ctx, settings, user, req.Amount); err != nil {
		log.Debug(LogMsgSpinRejected, "reason", err.Error())
		return nil, err
	}

	// 4. balance, fail closed
	var balance int64
	err = s.ledgerCall(ctx, func(ctx context.Context) error {
		var getErr error
		balance, getErr = s.ledger.GetBalance(ctx, user.UserID, settings.CurrencyID)
		return getErr
	})
	if err != nil {
		log.Warn(LogMsgBalanceFetchFail, "error", err)
		balance = 0
	}
	if balance < req.Amount {
		s.say(ctx, settings, renderUser(msgs.NotEnough, user.Username))
		return nil, fmt.Errorf(ErrMsgBalanceShortFmt, domain.ErrInsufficientFunds, balance, req.Amount)
	}

	// 5. the cooldown is consumed even if the debit then fails
	if cd := settings.Cooldown(); cd > 0 {
		if err := s.cooldowns.Arm(ctx, CooldownKey(user.UserID), cd); err != nil {
			return nil, fmt.Errorf(ErrMsgCooldownFailed, err)
		}
	}

	// 6. debit
	if err := s.ledgerCall(ctx, func(ctx context.Context) error {
		return s.ledger.AdjustBalance(ctx, user.UserID, settings.CurrencyID, -req.Amount)
	}); err != nil {
		log.Error(LogMsgDebitFailed, "error", err)
		s.say(ctx, settings, fmt.Sprintf(ReplyFmtDebitFailed, user.Username))
		s.aborted(ctx, req, domain.AbortStageDebit)
		return nil, err
	}

	// 7. success chance
	chance := s.successChance(ctx, settings, user)

	// 8. roll
	inAction := renderUser(msgs.SpinInAction, user.Username)
	rolls, err := s.roller.Spin(ctx, msgs.ShowSpinInAction, inAction, chance, settings.ChatIdentity)
	if err != nil {
		return nil, s.refund(ctx, settings, req, err)
	}

	// 9. credit
	winnings := Winnings(req.Amount, rolls, settings.Multiplier)
	if winnings > 0 {
		if err := s.ledgerCall(ctx, func(ctx context.Context) error {
			return s.ledger.AdjustBalance(ctx, user.UserID, settings.CurrencyID, winnings)
		}); err != nil {
			log.Error(LogMsgCreditFailed, "error", err, "winnings", winnings)
			s.say(ctx, settings, fmt.Sprintf(ReplyFmtCreditFailed, user.Username))
			s.aborted(ctx, req, domain.AbortStageCredit)
			return nil, err
		}
	}

	// 10. report
	currencyName := s.currencyName(ctx, settings.CurrencyID)
	outcome := &domain.SpinOutcome{
		UserID:          user.UserID,
		Username:        user.Username,
		Wager:           req.Amount,
		SuccessChance:   chance,
		SuccessfulRolls: rolls,
		Winnings:        winnings,
		CurrencyName:    currencyName,
		Message:         renderSuccess(msgs, user.Username, rolls, winnings, currencyName),
	}
	s.say(ctx, settings, outcome.Message)

	log.Info(LogMsgSpinCompleted, "chance", chance, "rolls", rolls, "winnings", winnings)
	s.publish(ctx, event.NewSlotsCompletedEvent(domain.SlotsCompletedPayload{
		UserID:          user.UserID,
		Username:        user.Username,
		Wager:           req.Amount,
		SuccessChance:   chance,
		SuccessfulRolls: rolls,
		Winnings:        winnings,
		CurrencyID:      settings.CurrencyID,
	}, logger.GetRequestID(ctx)))

	// 11. the deferred release clears the session
	return outcome, nil
}

// Winnings is floor(wager × rolls × multiplier)
func Winnings(wager int64, rolls int, multiplier float64) int64 {
	if wager <= 0 || rolls <= 0 || multiplier <= 0 {
		return 0
	}
	return int64(math.Floor(float64(wager) * float64(rolls) * multiplier))
}

// checkBounds rejects non-positive wagers and wagers outside the configured
// limits. A zero limit is unbounded.
func (s *service) checkBounds(ctx context.Context, settings domain.SlotsSettings, user domain.ChatUser, amount int64) error {
	msgs := settings.Messages
	switch {
	case amount < 1:
		s.say(ctx, settings, renderUser(msgs.MoreThanZero, user.Username))
		return fmt.Errorf(ErrFmtWithDetail, domain.ErrValidation, domain.ErrMsgWagerNotPositive)
	case settings.MinWager > 0 && amount < settings.MinWager:
		s.say(ctx, settings, renderMinWager(msgs, user.Username, settings.MinWager))
		return fmt.Errorf(ErrMsgWagerLimitFmt, domain.ErrWagerBounds, domain.ErrMsgWagerBelowMinimum, settings.MinWager)
	case settings.MaxWager > 0 && amount > settings.MaxWager:
		s.say(ctx, settings, renderMaxWager(msgs, user.Username, settings.MaxWager))
		return fmt.Errorf(ErrMsgWagerLimitFmt, domain.ErrWagerBounds, domain.ErrMsgWagerAboveMaximum, settings.MaxWager)
	}
	return nil
}

// successChance starts at the base percent and takes the first role
// override the user qualifies for, in configured order
func (s *service) successChance(ctx context.Context, settings domain.SlotsSettings, user domain.ChatUser) int {
	chance := settings.BasePercent
	if len(settings.RoleOverrides) == 0 || s.roles == nil {
		return chance
	}

	held, err := s.roles.RolesFor(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgRolesFailed, "user_id", user.UserID, "error", err)
	}
	for _, override := range settings.RoleOverrides {
		for _, role := range held {
			if strings.EqualFold(role.ID, override.RoleID) {
				return override.Percent
			}
		}
	}
	return chance
}

// ledgerCall bounds fn with the ledger timeout and reports every failure as
// domain.ErrLedger
func (s *service) ledgerCall(ctx context.Context, fn func(ctx context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, s.ledgerTimeout)
	defer cancel()

	err := fn(callCtx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return fmt.Errorf(ErrFmtWithDetail, domain.ErrLedger, domain.ErrMsgLedgerTimeout)
	default:
		return fmt.Errorf(ErrFmtLedgerCall, domain.ErrLedger, err)
	}
}

// refund returns the wager when the roll could not complete
func (s *service) refund(ctx context.Context, settings domain.SlotsSettings, req domain.SpinRequest, rollErr error) error {
	log := logger.FromContext(ctx)
	log.Error(LogMsgRollFailed, "user_id", req.User.UserID, "error", rollErr)

	// the request context may be what failed the roll
	refundCtx := context.WithoutCancel(ctx)
	if err := s.ledgerCall(refundCtx, func(ctx context.Context) error {
		return s.ledger.AdjustBalance(ctx, req.User.UserID, settings.CurrencyID, req.Amount)
	}); err != nil {
		log.Error(LogMsgRefundFailed, "user_id", req.User.UserID, "error", err)
	}
	s.say(refundCtx, settings, fmt.Sprintf(ReplyFmtRollFailed, req.User.Username))
	s.aborted(refundCtx, req, domain.AbortStageRoll)
	return fmt.Errorf(ErrMsgRollFailedFmt, domain.ErrLedger, rollErr)
}

func (s *service) currencyName(ctx context.Context, currencyID string) string {
	var c domain.Currency
	err := s.ledgerCall(ctx, func(ctx context.Context) error {
		var getErr error
		c, getErr = s.ledger.GetCurrency(ctx, currencyID)
		return getErr
	})
	if err != nil || c.Name == "" {
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgCurrencyFailed, "currency_id", currencyID, "error", err)
		}
		return currencyID
	}
	return c.Name
}

func (s *service) say(ctx context.Context, settings domain.SlotsSettings, text string) {
	if text == "" || s.sender == nil {
		return
	}
	chat.Reply(ctx, s.sender, chat.Message{Text: text, Identity: settings.ChatIdentity})
}

func (s *service) aborted(ctx context.Context, req domain.SpinRequest, stage string) {
	s.publish(ctx, event.NewSlotsAbortedEvent(domain.SlotsAbortedPayload{
		UserID:   req.User.UserID,
		Username: req.User.Username,
		Wager:    req.Amount,
		Stage:    stage,
	}, logger.GetRequestID(ctx)))
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}

func (s *service) PurgeCaches(ctx context.Context) error {
	s.sessions.Purge()
	if err := s.cooldowns.Purge(ctx); err != nil {
		return fmt.Errorf(ErrMsgPurgeFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgCachesPurged)
	return nil
}

// Shutdown waits for in-flight spins so no wager is left between debit and credit
func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
