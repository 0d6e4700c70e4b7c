package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"es-update-notifier/internal/usecase"
)

type Checker interface {
	Check(ctx context.Context, in usecase.CheckInput) usecase.Report
}

// Handler adapts a scheduled EventBridge invocation to a single update check.
type Handler struct {
	checker Checker
	logger  *slog.Logger
}

func NewHandler(c Checker, logger *slog.Logger) (*Handler, error) {
	if c == nil {
		return nil, errors.New("handler: checker must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{checker: c, logger: logger}, nil
}

// Handle runs one check. The event content is only used to correlate logs;
// the returned error is always nil so the scheduler never retries a run.
func (h *Handler) Handle(ctx context.Context, evt events.CloudWatchEvent) error {
	runID := strings.TrimSpace(evt.ID)
	report := h.checker.Check(ctx, usecase.CheckInput{RunID: runID})

	h.logger.Info("update check finished",
		"run_id", report.RunID,
		"scheduled_at", evt.Time,
		"domains", report.DomainsFound,
		"inspection_failures", report.InspectionFailures,
		"up_to_date", report.UpToDate,
		"updates_available", report.UpdatesAvailable,
		"notified", report.Notified,
		"notification_errors", report.NotificationErrors,
		"notifications_missed", report.NotificationsMissed,
	)
	return nil
}
