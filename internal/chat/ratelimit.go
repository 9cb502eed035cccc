package chat

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedSender throttles outbound messages to stay under platform limits
type RateLimitedSender struct {
	inner   Sender
	limiter *rate.Limiter
}

// NewRateLimitedSender allows perSecond messages with the given burst
func NewRateLimitedSender(inner Sender, perSecond float64, burst int) *RateLimitedSender {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedSender{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Send waits for a token then forwards the message
func (s *RateLimitedSender) Send(ctx context.Context, msg Message) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf(ErrMsgRateLimitWait, err)
	}
	return s.inner.Send(ctx, msg)
}
