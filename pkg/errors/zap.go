package errors

import "go.uber.org/zap"

// ZapHandler is an ErrorHandler that writes structured entries to a zap
// logger. Reported errors are logged at Warn, since most of them were
// already recovered locally; panics are logged at Error.
type ZapHandler struct {
	logger *zap.Logger
}

// NewZapHandler returns a handler writing to logger. A nil logger is
// replaced with zap.NewNop.
func NewZapHandler(logger *zap.Logger) *ZapHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapHandler{logger: logger}
}

// HandleError logs a DriftError.
func (h *ZapHandler) HandleError(err *DriftError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.String("kind", err.Kind.String()),
		zap.Time("timestamp", err.Timestamp),
		zap.Error(err.Err),
	}
	if err.Channel != "" {
		fields = append(fields, zap.String("channel", err.Channel))
	}
	if err.Permission != "" {
		fields = append(fields, zap.String("permission", err.Permission))
	}
	if err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger.Warn("drift error", fields...)
}

// HandlePanic logs a PanicError.
func (h *ZapHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	h.logger.Error("drift panic",
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
		zap.String("stack", err.StackTrace),
	)
}
