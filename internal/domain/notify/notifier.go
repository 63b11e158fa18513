// Package notify defines the outbound notification seam. Delivery itself
// (email, webhooks) lives outside this service; the core only announces.
package notify

import (
	"context"

	"fretor/pkg/logger"
)

// Notifier is told about report job outcomes. Implementations must be safe
// for concurrent use and must not block job completion.
type Notifier interface {
	ReportCompleted(ctx context.Context, tenantID int64, jobID, artifactName string)
	ReportFailed(ctx context.Context, tenantID int64, jobID, reason string)
}

// LogNotifier writes outcomes to the log. It is the default wiring until a
// real delivery channel is attached.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.WithComponent("notify")}
}

func (n *LogNotifier) ReportCompleted(ctx context.Context, tenantID int64, jobID, artifactName string) {
	n.log.WithContext(ctx).Infow("report job completed",
		"tenant_id", tenantID,
		"job_id", jobID,
		"artifact", artifactName,
	)
}

func (n *LogNotifier) ReportFailed(ctx context.Context, tenantID int64, jobID, reason string) {
	n.log.WithContext(ctx).Warnw("report job failed",
		"tenant_id", tenantID,
		"job_id", jobID,
		"reason", reason,
	)
}
