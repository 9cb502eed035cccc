package worker

import (
	"context"
	"fmt"

	"github.com/osse101/ChatDispatch_Go/internal/command"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
	"github.com/osse101/ChatDispatch_Go/internal/metrics"
)

// MessageHandler runs one chat message through the command pipeline
type MessageHandler interface {
	Handle(ctx context.Context, msg domain.ChatMessage) (*command.Result, error)
}

// ChatMessageJob handles one inbound chat message
type ChatMessageJob struct {
	// ctx keeps the request's values but not its cancellation; the job
	// outlives the request that queued it
	ctx     context.Context
	handler MessageHandler
	msg     domain.ChatMessage
}

// NewChatMessageJob creates a job for msg
func NewChatMessageJob(ctx context.Context, handler MessageHandler, msg domain.ChatMessage) *ChatMessageJob {
	return &ChatMessageJob{
		ctx:     context.WithoutCancel(ctx),
		handler: handler,
		msg:     msg,
	}
}

// Process runs the message through the handler
func (j *ChatMessageJob) Process(_ context.Context) error {
	ctx := j.ctx
	res, err := j.handler.Handle(ctx, j.msg)
	if res != nil {
		metrics.RecordMessage(j.msg.User.Platform, res.Matched)
	}
	if err != nil {
		return fmt.Errorf(ErrMsgChatJobFailed, j.msg.ID, err)
	}
	if res != nil && res.Executed {
		logger.FromContext(ctx).Debug(LogMsgChatJobDone,
			"trigger", res.Trigger,
			"sub_command", res.SubCommand,
			"halted_at", res.HaltedAt.String())
	}
	return nil
}

// Dispatcher queues chat messages on a pool
type Dispatcher struct {
	pool    *Pool
	handler MessageHandler
}

// NewDispatcher creates a dispatcher feeding handler through pool
func NewDispatcher(pool *Pool, handler MessageHandler) *Dispatcher {
	return &Dispatcher{pool: pool, handler: handler}
}

// Submit queues msg without blocking. A full queue drops the message.
func (d *Dispatcher) Submit(ctx context.Context, msg domain.ChatMessage) error {
	if err := d.pool.TryEnqueue(NewChatMessageJob(ctx, d.handler, msg)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgMessageDropped, "message_id", msg.ID, "error", err)
		return err
	}
	return nil
}
