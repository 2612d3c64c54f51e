package driven

// Reporter writes human-readable progress lines, each prefixed with a
// severity tag. Output is meant for people and CI logs, not for parsing.
type Reporter interface {
	Info(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)
	Success(format string, args ...any)
	Processing(format string, args ...any)
	SyncMode(format string, args ...any)
}
