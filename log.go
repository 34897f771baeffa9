package drcore

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger, generalizing the teacher's ad hoc
// fmt.Fprintf(os.Stderr, ...) debug dump (link_router.go's route.dump)
// into structured, leveled logging used at every pipeline stage
// boundary (SPEC_FULL.md §2).
type Logger struct {
	zl zerolog.Logger
}

// NewLogger returns a Logger writing to w at the given level. A nil w
// defaults to os.Stderr.
func NewLogger(w io.Writer, level zerolog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	zl := zerolog.New(w).With().Timestamp().Logger().Level(level)
	return &Logger{zl: zl}
}

// NopLogger returns a Logger that discards everything, for tests that
// don't care about diagnostic output.
func NopLogger() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// Stage logs entry into a pipeline stage boundary (spec.md §5: stem
// assignment per TermLoc, global route per net, A* expansion per
// popped point, channel-plane paint per tile, channel router per
// column, paintback per channel).
func (l *Logger) Stage(name string, fields map[string]any) {
	ev := l.zl.Debug().Str("stage", name)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg("stage boundary")
}

// Interrupted logs that a stage returned early because the shared
// interrupt flag was set.
func (l *Logger) Interrupted(stage string) {
	l.zl.Warn().Str("stage", stage).Msg("interrupt pending, aborting stage")
}

// Error logs a pipeline-level error (distinct from routing Feedback,
// which is user-facing routing-result data — see SPEC_FULL.md §7).
func (l *Logger) Error(stage string, err error) {
	l.zl.Error().Str("stage", stage).Err(err).Msg("pipeline error")
}
