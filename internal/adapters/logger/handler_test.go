package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/ripplebuild/ripple/internal/adapters/logger"
	"github.com/sebdah/goldie/v2"
)

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{
			name:       "info message",
			level:      slog.LevelInfo,
			msg:        "stylesheet pipeline ready",
			goldenName: "handler_info",
		},
		{
			name:       "warn message",
			level:      slog.LevelWarn,
			msg:        "dangling reference",
			goldenName: "handler_warn",
		},
		{
			name:       "error message",
			level:      slog.LevelError,
			msg:        "compile failed",
			goldenName: "handler_error",
		},
		{
			name:       "debug level filtered",
			level:      slog.LevelDebug,
			msg:        "debug message",
			goldenName: "handler_debug_filtered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			})
			lg := slog.New(handler)

			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, nil)
	lg := slog.New(handler)

	lg.Info("compiled", "entry", "main.scss", "targets", 2)

	g := goldie.New(t)
	g.Assert(t, "handler_attrs", buf.Bytes())
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, nil)
	lg := slog.New(handler).WithGroup("build").With("entry", "main.scss")

	lg.Info("done")

	g := goldie.New(t)
	g.Assert(t, "handler_group", buf.Bytes())
}
