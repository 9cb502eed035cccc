package command

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/osse101/ChatDispatch_Go/internal/chat"
	"github.com/osse101/ChatDispatch_Go/internal/cooldown"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/event"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
	"github.com/osse101/ChatDispatch_Go/internal/roles"
	"github.com/osse101/ChatDispatch_Go/internal/utils"
)

// GateState is a step of the per-message execution state machine
type GateState int

const (
	StateReceive GateState = iota
	StateTokenize
	StateResolveTrigger
	StateCheckPermission
	StateCheckCooldown
	StateExecute
	StateArmCooldown
	StateTerminal
)

var gateStateNames = [...]string{
	StateReceive:         "RECEIVE",
	StateTokenize:        "TOKENIZE",
	StateResolveTrigger:  "RESOLVE_TRIGGER",
	StateCheckPermission: "CHECK_PERMISSION",
	StateCheckCooldown:   "CHECK_COOLDOWN",
	StateExecute:         "EXECUTE",
	StateArmCooldown:     "ARM_COOLDOWN",
	StateTerminal:        "TERMINAL",
}

func (s GateState) String() string {
	if s < 0 || int(s) >= len(gateStateNames) {
		return fmt.Sprintf("GateState(%d)", int(s))
	}
	return gateStateNames[s]
}

// Result reports how far a message got through the gate
type Result struct {
	// HaltedAt is the last state entered before TERMINAL
	HaltedAt     GateState
	Matched      bool
	System       bool
	Trigger      string
	SubCommand   string
	Executed     bool
	RejectReason string
}

// Gate runs inbound chat messages through trigger resolution, permission and
// cooldown checks, then executes the matched command. A rejection replies to
// the user and leaves no other trace: nothing is executed and no cooldown is
// armed.
type Gate struct {
	registry  *Registry
	store     Store
	cooldowns cooldown.Service
	roles     roles.Resolver
	sender    chat.Sender
	bus       event.Bus
	identity  string
}

// NewGate wires the gate. bus may be nil.
func NewGate(registry *Registry, store Store, cooldowns cooldown.Service, resolver roles.Resolver, sender chat.Sender, bus event.Bus, identity string) *Gate {
	return &Gate{
		registry:  registry,
		store:     store,
		cooldowns: cooldowns,
		roles:     resolver,
		sender:    sender,
		bus:       bus,
		identity:  identity,
	}
}

// Handle processes one message. The error is reserved for infrastructure
// failures; rejections are reported through Result.
func (g *Gate) Handle(ctx context.Context, msg domain.ChatMessage) (*Result, error) {
	res := &Result{HaltedAt: StateReceive}
	if strings.TrimSpace(msg.Text) == "" {
		return res, nil
	}

	ctx = chat.WithOrigin(ctx, chat.Origin{Platform: msg.User.Platform, Channel: msg.Channel})

	res.HaltedAt = StateTokenize
	tokens := Tokenize(msg.Text)

	res.HaltedAt = StateResolveTrigger
	inv, handler, err := g.resolve(ctx, msg, tokens)
	if err != nil || inv == nil {
		return res, err
	}
	res.Matched = true
	res.System = handler != nil
	res.Trigger = inv.Definition.Trigger
	res.SubCommand = inv.SubCommandID()

	log := logger.FromContext(ctx).With(logger.AttrKeyTrigger, res.Trigger, logger.AttrKeyUserID, msg.User.UserID)

	res.HaltedAt = StateCheckPermission
	if !g.permitted(ctx, inv.Definition.Permission, msg.User) {
		inv.Whisper(ctx, fmt.Sprintf(ReplyFmtNoPermission, msg.User.Username, res.Trigger))
		g.reject(ctx, res, msg, domain.RejectReasonPermission)
		return res, nil
	}

	res.HaltedAt = StateCheckCooldown
	remaining, claimed, err := g.claimCooldown(ctx, inv.Definition, msg.User.UserID)
	if err != nil {
		return res, err
	}
	if remaining > 0 {
		inv.Whisper(ctx, fmt.Sprintf(ReplyFmtOnCooldown, msg.User.Username, res.Trigger, utils.SecondsForHumans(remaining)))
		g.reject(ctx, res, msg, domain.RejectReasonCooldown)
		return res, nil
	}

	res.HaltedAt = StateExecute
	if err := g.execute(ctx, inv, handler); err != nil {
		g.releaseCooldown(ctx, claimed)
		log.Error(LogMsgExecuteFailed, "error", err)
		inv.Whisper(ctx, fmt.Sprintf(ReplyFmtCommandFailed, msg.User.Username, res.Trigger))
		return res, fmt.Errorf(ErrMsgExecuteFailed, res.Trigger, err)
	}
	res.Executed = true

	// The window was claimed at the check; it stays armed from here.
	if len(claimed) > 0 {
		res.HaltedAt = StateArmCooldown
	}

	log.Debug(LogMsgGateExecuted, "sub_command", res.SubCommand, "system", res.System)
	g.publish(ctx, event.NewCommandExecutedEvent(domain.CommandExecutedPayload{
		Trigger:    res.Trigger,
		SubCommand: res.SubCommand,
		UserID:     msg.User.UserID,
		Username:   msg.User.Username,
		Platform:   msg.User.Platform,
		System:     res.System,
	}, logger.GetRequestID(ctx)))
	return res, nil
}

// resolve finds the command a message invokes. System commands win over
// custom ones; exact triggers win over phrase matches.
func (g *Gate) resolve(ctx context.Context, msg domain.ChatMessage, tokens []string) (*Invocation, Handler, error) {
	if len(tokens) == 0 {
		return nil, nil, nil
	}

	if h, ok := g.registry.Get(tokens[0]); ok {
		def := h.Definition()
		if !def.Active {
			return nil, nil, nil
		}
		return g.invocation(msg, def, tokens[1:]), h, nil
	}

	cmds, err := g.store.List(ctx, true)
	if err != nil {
		return nil, nil, fmt.Errorf(ErrMsgListCommandsFailed, err)
	}

	text := strings.TrimSpace(msg.Text)
	var best *domain.CommandDefinition
	bestWords := 0
	for i := range cmds {
		cmd := &cmds[i]
		if cmd.ScanWholeMessage {
			continue
		}
		words := Tokenize(cmd.Trigger)
		if len(words) == 0 || len(words) > len(tokens) || len(words) <= bestWords {
			continue
		}
		if strings.EqualFold(strings.Join(tokens[:len(words)], " "), strings.Join(words, " ")) {
			best, bestWords = cmd, len(words)
		}
	}
	if best != nil {
		return g.invocation(msg, *best, tokens[bestWords:]), nil, nil
	}

	for i := range cmds {
		cmd := &cmds[i]
		if cmd.ScanWholeMessage && containsPhrase(text, cmd.Trigger) {
			return g.invocation(msg, *cmd, tokens), nil, nil
		}
	}
	return nil, nil, nil
}

func (g *Gate) invocation(msg domain.ChatMessage, def domain.CommandDefinition, args []string) *Invocation {
	return NewInvocation(msg, def, args, g.sender, g.identity)
}

// containsPhrase reports whether phrase appears in text starting at a word
// boundary and not running into a following word character
func containsPhrase(text, phrase string) bool {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return false
	}
	re, err := regexp.Compile(`(?i)(?:^|\s)` + regexp.QuoteMeta(phrase) + `(?:\W|$)`)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

func (g *Gate) permitted(ctx context.Context, perm domain.Permission, user domain.ChatUser) bool {
	if perm.IsUnrestricted() {
		return true
	}

	switch perm.Type {
	case domain.PermissionViewer:
		return strings.EqualFold(perm.Username, user.Username)
	case domain.PermissionGroup:
		if g.roles == nil {
			return false
		}
		held, err := g.roles.RolesFor(ctx, user)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgRoleResolveFailed, "user_id", user.UserID, "error", err)
		}
		return roles.HasAny(held, perm.Groups)
	default:
		return false
	}
}

// CooldownKeys returns the global and per-user cooldown keys of a command
func CooldownKeys(def domain.CommandDefinition, userID string) (global, user string) {
	scope := cooldownKeyPrefix + def.ID
	return cooldown.GlobalKey(scope), cooldown.UserKey(scope, userID)
}

// claimCooldown checks and arms the global and per-user windows of def in
// one step per key, so concurrent invocations cannot both pass. It returns
// the keys it armed; when a window is still running nothing stays armed and
// the longest remaining time is returned.
func (g *Gate) claimCooldown(ctx context.Context, def domain.CommandDefinition, userID string) (time.Duration, []string, error) {
	if def.Cooldown.IsZero() {
		return 0, nil, nil
	}
	globalKey, userKey := CooldownKeys(def, userID)

	var claimed []string
	var longest time.Duration
	for _, w := range []struct {
		key string
		d   time.Duration
	}{
		{globalKey, def.Cooldown.GlobalDuration()},
		{userKey, def.Cooldown.UserDuration()},
	} {
		remaining, err := g.cooldowns.TryArm(ctx, w.key, w.d)
		if err != nil {
			g.releaseCooldown(ctx, claimed)
			return 0, nil, fmt.Errorf(ErrMsgCheckCooldownFailed, err)
		}
		if remaining > 0 {
			if remaining > longest {
				longest = remaining
			}
			continue
		}
		if w.d > 0 {
			claimed = append(claimed, w.key)
		}
	}

	if longest > 0 {
		g.releaseCooldown(ctx, claimed)
		return longest, nil, nil
	}
	return 0, claimed, nil
}

func (g *Gate) releaseCooldown(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := g.cooldowns.Reset(ctx, key); err != nil {
			logger.FromContext(ctx).Warn(LogMsgCooldownReleaseFailed, "key", key, "error", err)
		}
	}
}

// execute runs a system handler, or a custom command's chat effects
func (g *Gate) execute(ctx context.Context, inv *Invocation, handler Handler) error {
	if handler != nil {
		return handler.Execute(ctx, inv)
	}
	for _, effect := range inv.Definition.Effects {
		if effect.Type == domain.EffectTypeChat && effect.Message != "" {
			inv.Reply(ctx, effect.Message)
		}
	}
	return nil
}

func (g *Gate) reject(ctx context.Context, res *Result, msg domain.ChatMessage, reason string) {
	res.RejectReason = reason
	logger.FromContext(ctx).Debug(LogMsgGateRejected, logger.AttrKeyTrigger, res.Trigger, logger.AttrKeyUserID, msg.User.UserID, "reason", reason)
	g.publish(ctx, event.NewCommandRejectedEvent(domain.CommandRejectedPayload{
		Trigger:  res.Trigger,
		UserID:   msg.User.UserID,
		Username: msg.User.Username,
		Reason:   reason,
	}, logger.GetRequestID(ctx)))
}

func (g *Gate) publish(ctx context.Context, evt event.Event) {
	if g.bus == nil {
		return
	}
	if err := g.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	}
}
