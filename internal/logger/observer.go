package logger

import (
	"github.com/moamenhredeen/oasprobe/internal/prober"
	"go.uber.org/zap"
)

// Observer turns probe events into structured log entries
type Observer struct {
	log *zap.Logger
}

// NewObserver creates an observer writing to log
func NewObserver(log *zap.Logger) *Observer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Observer{log: log.Named("probe")}
}

// Handle is a prober.OnProbeEvent
func (o *Observer) Handle(event prober.ProbeEvent) {
	fields := []zap.Field{
		zap.String("source", event.SourceURL),
		zap.Int("document", event.Index+1),
		zap.Int("documents", event.Total),
	}

	switch event.Type {
	case prober.EventDocumentFetched:
		o.log.Info("document fetched", append(fields,
			zap.String("host", event.Document.Host),
			zap.String("base_path", event.Document.BasePath),
			zap.Int("operations", event.Document.OperationCount()),
		)...)

	case prober.EventOperationProbed:
		o.log.Debug("operation probed", append(fields,
			zap.String("method", event.Result.Method),
			zap.String("url", event.Result.URL),
			zap.String("status", event.Result.Status.String()),
			zap.Int("body_bytes", len(event.Result.Body)),
		)...)

	case prober.EventFailureRecorded:
		if event.Operation == nil {
			o.log.Warn("document fetch failed", append(fields, zap.Error(event.Err))...)
			return
		}
		o.log.Warn("probe failed", append(fields,
			zap.String("method", event.Result.Method),
			zap.String("url", event.Result.URL),
			zap.String("cause", event.Result.Body),
		)...)
	}
}
