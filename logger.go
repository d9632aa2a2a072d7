package sparsegrid

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with consistent field names for grid operations.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler logs
// text at info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger writing JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NewTextLogger creates a Logger writing text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))}
}

// WithGrid tags records with a grid name.
func (l *Logger) WithGrid(name string) *Logger {
	return &Logger{Logger: l.Logger.With("grid", name)}
}

// WithMember tags records with an ensemble member.
func (l *Logger) WithMember(index int, name string) *Logger {
	return &Logger{Logger: l.Logger.With("member", index, "member_name", name)}
}

// LogSave logs a grid save.
func (l *Logger) LogSave(ctx context.Context, name string, bytes int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed", "grid", name, "error", err)
		return
	}
	l.InfoContext(ctx, "grid saved", "grid", name, "bytes", bytes, "duration", d)
}

// LogLoad logs a grid load.
func (l *Logger) LogLoad(ctx context.Context, name string, bytes int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed", "grid", name, "error", err)
		return
	}
	l.DebugContext(ctx, "grid loaded", "grid", name, "bytes", bytes, "duration", d)
}

// LogMerge logs a merge of sources into target.
func (l *Logger) LogMerge(ctx context.Context, target string, sources []string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "merge failed", "grid", target, "sources", sources, "error", err)
		return
	}
	l.InfoContext(ctx, "grids merged", "grid", target, "sources", len(sources))
}

// LogConvolve logs a single convolution.
func (l *Logger) LogConvolve(ctx context.Context, bins, xfxCalls, hits int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "convolution failed", "error", err)
		return
	}
	l.DebugContext(ctx, "convolution completed",
		"bins", bins,
		"xfx_calls", xfxCalls,
		"cache_hits", hits,
		"duration", d,
	)
}

// LogOptimize logs an optimization and the populated cells before and
// after.
func (l *Logger) LogOptimize(ctx context.Context, name string, before, after uint64) {
	l.InfoContext(ctx, "grid optimized", "grid", name, "cells_before", before, "cells_after", after)
}

// LogEnsemble logs an ensemble convolution.
func (l *Logger) LogEnsemble(ctx context.Context, members, failed int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ensemble failed", "members", members, "failed", failed, "error", err)
		return
	}
	l.InfoContext(ctx, "ensemble completed", "members", members, "duration", d)
}
