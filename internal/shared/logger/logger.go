package logger

// Logger is the logging surface application services depend on.
// *infrastructure/logger.Logger satisfies it; tests pass no-op loggers.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
