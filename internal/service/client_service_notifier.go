package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/models"
)

type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier returns a Notifier that writes the drain outcome to the log.
func NewLogNotifier(logger *logger.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) SyncFinished(_ context.Context, summary models.SyncSummary) {
	n.logger.Info().
		Int("success", summary.SuccessCount).
		Int("failed", summary.FailCount).
		Int("dropped", summary.Dropped).
		Dur("took", summary.FinishedAt.Sub(summary.StartedAt)).
		Msg(SummaryMessage(summary))
}

// SummaryMessage renders the single user-facing line for a drain cycle.
func SummaryMessage(summary models.SyncSummary) string {
	switch {
	case summary.Skipped:
		return "sync already in progress"
	case summary.FailCount > 0 && summary.SuccessCount > 0:
		return fmt.Sprintf("synced %s, failed to sync %s", changes(summary.SuccessCount), changes(summary.FailCount))
	case summary.FailCount > 0:
		return fmt.Sprintf("failed to sync %s", changes(summary.FailCount))
	case summary.SuccessCount > 0:
		return fmt.Sprintf("synced %s", changes(summary.SuccessCount))
	case summary.Dropped > 0:
		return fmt.Sprintf("discarded %s", changes(summary.Dropped))
	}
	return "nothing to sync"
}

func changes(n int) string {
	if n == 1 {
		return "1 change"
	}
	return fmt.Sprintf("%d changes", n)
}
