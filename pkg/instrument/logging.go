package instrument

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/proton/pkg/reactive"
)

// Logger is an Observer that writes one structured record per notification.
type Logger struct {
	logger *slog.Logger
	level  slog.Level
}

// Logging creates an Observer that logs runtime activity at level.
// Effect runs that panic are always logged at Error.
func Logging(logger *slog.Logger, level slog.Level) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger, level: level}
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	l.logger.Log(ctx, level, msg, args...)
}

func (l *Logger) EffectCreated(e *reactive.Effect) {
	l.log(l.level, "effect created", "effect", e.ID(), "name", e.Name())
}

func (l *Logger) EffectStarted(e *reactive.Effect) {
	l.log(l.level, "effect started", "effect", e.ID(), "name", e.Name())
}

func (l *Logger) EffectFinished(e *reactive.Effect, elapsed time.Duration, panicked bool) {
	if panicked {
		l.log(slog.LevelError, "effect panicked",
			"effect", e.ID(),
			"name", e.Name(),
			"elapsed", elapsed)
		return
	}
	l.log(l.level, "effect finished",
		"effect", e.ID(),
		"name", e.Name(),
		"deps", e.Deps(),
		"elapsed", elapsed)
}

func (l *Logger) EffectStopped(e *reactive.Effect) {
	l.log(l.level, "effect stopped", "effect", e.ID(), "name", e.Name())
}

func (l *Logger) Triggered(t *reactive.Target, op reactive.Op, scheduled int) {
	l.log(l.level, "trigger",
		"target", t.String(),
		"op", op.String(),
		"scheduled", scheduled)
}

func (l *Logger) ScopeDisposed(s *reactive.Scope) {
	l.log(l.level, "scope disposed", "scope", s.ID())
}

var _ reactive.Observer = (*Logger)(nil)
