package notify

import (
	"context"
	"log/slog"
)

// Fanout publishes to every configured sink. A sink failure is logged and
// swallowed so callers see success as long as the event reached the process.
type Fanout struct {
	sinks  []Publisher
	logger *slog.Logger
}

func NewFanout(logger *slog.Logger, sinks ...Publisher) *Fanout {
	nonNil := make([]Publisher, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			nonNil = append(nonNil, s)
		}
	}
	return &Fanout{sinks: nonNil, logger: logger}
}

func (f *Fanout) Publish(ctx context.Context, event Event) error {
	for _, sink := range f.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			f.logger.WarnContext(ctx, "event sink publish failed",
				"kind", string(event.Kind),
				"error", err,
			)
		}
	}
	return nil
}
