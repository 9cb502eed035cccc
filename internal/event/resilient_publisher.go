package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	// DeadLetter receives events whose retries are exhausted. Optional.
	DeadLetter *DeadLetterWriter
}

// ResilientPublisher wraps an event Bus with background retries and a
// dead-letter file. Publish never blocks the caller on a failing subscriber.
type ResilientPublisher struct {
	inner    Bus
	config   ResilientConfig
	wg       sync.WaitGroup
	shutdown chan struct{}
	once     sync.Once
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = RetryInitialDelaySeconds * time.Second
	}
	return &ResilientPublisher{
		inner:    inner,
		config:   config,
		shutdown: make(chan struct{}),
	}
}

// Publish attempts delivery once and schedules retries on failure.
// It returns nil once the event has been accepted.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	p.wg.Add(1)
	go p.retryLoop(event, err)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown stops pending retries and waits for retry goroutines to exit
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	defer p.wg.Done()

	// Retries run detached from the request that produced the event
	ctx := context.Background()

	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		timer := time.NewTimer(CalculateRetryDelay(p.config.RetryDelay, attempt))
		select {
		case <-p.shutdown:
			timer.Stop()
			logger.Warn(LogMsgEventDroppedShutdown, "event_type", event.Type, "attempt", attempt)
			p.deadLetter(event, attempt-1, lastErr)
			return
		case <-timer.C:
		}

		lastErr = p.inner.Publish(ctx, event)
		if lastErr == nil {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempt", attempt)
			return
		}
		logger.Warn(LogMsgEventRetryFailed, "event_type", event.Type, "attempt", attempt, "error", lastErr)
	}

	logger.Error(LogMsgEventRetryExhausted, "event_type", event.Type, "error", lastErr)
	p.deadLetter(event, p.config.MaxRetries, lastErr)
}

func (p *ResilientPublisher) deadLetter(event Event, attempts int, lastErr error) {
	if p.config.DeadLetter == nil {
		return
	}
	if err := p.config.DeadLetter.Write(event, attempts, lastErr); err != nil {
		logger.Error(LogMsgEventDeadLettered, "event_type", event.Type, "error", err)
	}
}
