package cooldown

import (
	"context"

	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// SweepJob drops expired cooldowns. It is hygiene only: expired entries are
// already ignored at read time.
type SweepJob struct {
	Service Service
}

// Process implements worker.Job
func (j SweepJob) Process(ctx context.Context) error {
	removed, err := j.Service.Sweep(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		logger.FromContext(ctx).Debug(LogMsgSweepFinished, "removed", removed)
	}
	return nil
}
