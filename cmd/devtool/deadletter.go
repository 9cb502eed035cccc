package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/osse101/ChatDispatch_Go/internal/config"
	"github.com/osse101/ChatDispatch_Go/internal/event"
)

// DeadLetterCommand inspects events the resilient publisher gave up on and
// can push them back out to NATS
type DeadLetterCommand struct{}

func (c *DeadLetterCommand) Name() string {
	return "deadletter"
}

func (c *DeadLetterCommand) Description() string {
	return "Inspect or replay dead-lettered events (deadletter list [path] | deadletter replay [path])"
}

func (c *DeadLetterCommand) Run(args []string) error {
	const usage = "deadletter <list|replay> [path]"
	if len(args) < 1 || len(args) > 2 {
		return usageError(usage)
	}

	path := envOr("EVENT_DEADLETTER_PATH", config.DefaultDeadLetterPath)
	if len(args) == 2 {
		path = args[1]
	}

	entries, err := event.ReadDeadLetters(path)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		PrintInfo("No dead-lettered events in %s", path)
		return nil
	}

	switch args[0] {
	case "list":
		listDeadLetters(path, entries)
		return nil
	case "replay":
		return replayDeadLetters(entries)
	default:
		return usageError(usage)
	}
}

func listDeadLetters(path string, entries []event.DeadLetterEntry) {
	PrintHeader(fmt.Sprintf("%d dead-lettered events in %s", len(entries), path))

	counts := make(map[event.Type]int)
	for _, e := range entries {
		counts[e.Event.Type]++
		PrintWarning("%s %s %s after %d attempts: %s",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Event.Type, e.Event.ID, e.Attempts, e.LastError)
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		PrintInfo("%s: %d", t, counts[event.Type(t)])
	}
}

func replayDeadLetters(entries []event.DeadLetterEntry) error {
	url := envOr("NATS_URL", "")
	if url == "" {
		return errors.New("NATS_URL must be set to replay events")
	}

	nc, err := event.ConnectNATS(url)
	if err != nil {
		return err
	}
	defer nc.Close()

	bus := event.NewMemoryBus()
	event.NewNATSForwarder(nc).Register(bus)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	n, err := event.Replay(ctx, bus, entries)
	if err != nil {
		PrintWarning("Replayed %d of %d events before failing", n, len(entries))
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	PrintSuccess("Replayed %d events to NATS", n)
	return nil
}
