// Package logging builds the structured loggers used by the workflow runner
// and the experiment drivers.
package logging

import (
	"io"
	"log/slog"
	"path/filepath"
)

// ParseLevel parses "debug", "info", "warn" or "error" (any case).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

// New returns a text logger that writes to w. attrs, like the run ID, are
// added to every record
func New(w io.Writer, level slog.Level, attrs ...slog.Attr) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource:   true,
		Level:       level,
		ReplaceAttr: trimSource,
	})
	return slog.New(h.WithAttrs(attrs))
}

// Discard is a logger that drops everything. For tests.
func Discard() *slog.Logger {
	return New(io.Discard, slog.LevelError+1)
}

// trimSource cuts the source file down to its base name
func trimSource(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey {
		return a
	}
	if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
		source.File = filepath.Base(source.File)
	}
	return a
}
