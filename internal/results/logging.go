package results

import (
	"context"

	"github.com/charmbracelet/log"
)

// Logging wraps a Sink and logs every record and delivery error.
type Logging struct {
	next   Sink
	logger *log.Logger
}

// NewLogging wraps next. A nil next logs only.
func NewLogging(next Sink, logger *log.Logger) *Logging {
	if next == nil {
		next = Discard
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Logging{next: next, logger: logger.WithPrefix("results")}
}

// Report logs rec and forwards it.
func (l *Logging) Report(ctx context.Context, rec Record) error {
	l.logger.Info("session finished",
		"game", rec.GameID,
		"difficulty", rec.Difficulty,
		"outcome", rec.Event.Kind,
		"score", rec.Event.Score,
		"stars", Stars(rec),
	)
	if err := l.next.Report(ctx, rec); err != nil {
		l.logger.Error("could not record session", "game", rec.GameID, "error", err)
		return err
	}
	return nil
}
