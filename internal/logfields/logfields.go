package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRepo     = "repository"
	KeyPath     = "path"
	KeyDest     = "destination"
	KeyStage    = "stage"
	KeyResult   = "result"
	KeyRevision = "revision"
	KeyKey      = "key"
	KeyFile     = "file"
	KeyCount    = "count"
	KeyWarnings = "warnings"
	KeyDuration = "duration_ms"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Repository(r string) slog.Attr   { return slog.String(KeyRepo, r) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Destination(p string) slog.Attr  { return slog.String(KeyDest, p) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Result(r string) slog.Attr       { return slog.String(KeyResult, r) }
func Revision(rev string) slog.Attr   { return slog.String(KeyRevision, rev) }
func Key(k string) slog.Attr          { return slog.String(KeyKey, k) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Warnings(n int) slog.Attr        { return slog.Int(KeyWarnings, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDuration, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
