package audit

import (
	"context"
	"log/slog"

	"wikisite/pkg/attrs"
)

// Publisher emits audit events for maintenance-relevant resolution outcomes.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// LogAudit records an event on the structured logger and forwards it to the
// publisher when one is configured. Publisher failures are logged, never
// propagated: audit is best-effort and must not break resolution.
//
// When the event carries no detail, a "detail" key in the attribute list is
// promoted onto the stored event.
func LogAudit(ctx context.Context, logger *slog.Logger, publisher Publisher, event Event, kv ...any) {
	if event.Detail == "" {
		event.Detail = attrs.ExtractString(kv, "detail")
	}

	args := append(kv,
		"event", event.Action,
		"family", event.Family,
		"code", event.Code,
		"log_type", "audit",
	)

	if logger != nil {
		logger.InfoContext(ctx, event.Action, args...)
	}

	if publisher == nil {
		return
	}
	if err := publisher.Emit(ctx, event); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "event", event.Action, "error", err)
	}
}
