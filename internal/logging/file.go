package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/dmitrijs2005/nexaboard/internal/filex"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New. The REPL owns stdout, so diagnostics go to a
// rotated file; an empty File discards them.
type Options struct {
	File       string
	Level      string // debug, info, warn, error
	Format     string // text, json
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a SlogLogger from opts. The returned closer releases the log
// file and must be called on shutdown.
func New(opts Options) (*SlogLogger, io.Closer, error) {
	var w io.WriteCloser = nopCloser{io.Discard}

	if opts.File != "" {
		if _, err := filex.EnsureParentDir(opts.File); err != nil {
			return nil, nil, err
		}
		w = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 30),
		}
	}

	ho := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(w, ho)
	} else {
		h = slog.NewTextHandler(w, ho)
	}

	return NewSlogLogger(slog.New(h)), w, nil
}

// ParseLevel maps a level name to slog.Level; unknown names yield Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
