package ports

// Logger defines the interface for logging. Info accepts slog-style
// key/value pairs so callers can attach structured fields (e.g. a
// resolution's elapsed time) without the core depending on log/slog
// directly.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(err error)
}
