package audit

import (
	"context"

	"go.uber.org/zap"
)

const auditMessage = "AUDIT"

// LoggerAudit writes audit entries as structured log lines.
type LoggerAudit struct {
	logger *zap.SugaredLogger
}

var _ Audit = (*LoggerAudit)(nil)

func NewLoggerAudit(logger *zap.SugaredLogger) *LoggerAudit {
	return &LoggerAudit{logger: logger}
}

func (a *LoggerAudit) Write(_ context.Context, q *QueryData) error {
	a.logger.Infow(auditMessage, q.keysAndValues()...)
	return nil
}
