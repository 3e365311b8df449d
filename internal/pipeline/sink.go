package pipeline

import "github.com/sirupsen/logrus"

// ErrorSink receives every error the pipeline swallows instead of
// terminating on. It is injected once at construction; there is no ambient
// global handler.
type ErrorSink interface {
	Report(err error)
}

// logSink is the default ErrorSink, backed by the process logger.
type logSink struct {
	logger *logrus.Logger
}

// NewLogSink returns an ErrorSink that logs every reported error.
func NewLogSink(logger *logrus.Logger) ErrorSink {
	return &logSink{logger: logger}
}

func (s *logSink) Report(err error) {
	s.logger.Errorf("[pipeline] %v", err)
}
