package contour

import (
	"log"
	"time"
)

// TimerLabel names one of the build's timed phases.
type TimerLabel int

// Build phases tracked by BuildContext, in the order they run.
const (
	TimerTrace TimerLabel = iota
	TimerStitch
	TimerNest
	maxTimers
)

func (l TimerLabel) String() string {
	switch l {
	case TimerTrace:
		return "trace"
	case TimerStitch:
		return "stitch"
	case TimerNest:
		return "nest"
	default:
		return "unknown"
	}
}

// BuildContext carries optional logging and per-phase timing through
// a Builder.Build call. Unlike a pooled build context, this writes
// straight through a *log.Logger rather than buffering messages for
// later retrieval, since this package has no rendering/export surface
// that would want to replay them.
//
// A nil *BuildContext is valid everywhere it's accepted and disables
// both logging and timing.
type BuildContext struct {
	logger    *log.Logger
	startTime [maxTimers]time.Time
	accTime   [maxTimers]time.Duration
}

// NewBuildContext returns a BuildContext that logs through logger. A
// nil logger discards messages but still accumulates timings.
func NewBuildContext(logger *log.Logger) *BuildContext {
	return &BuildContext{logger: logger}
}

func (ctx *BuildContext) startTimer(label TimerLabel) {
	if ctx == nil {
		return
	}
	ctx.startTime[label] = time.Now()
}

func (ctx *BuildContext) stopTimer(label TimerLabel) {
	if ctx == nil {
		return
	}
	ctx.accTime[label] += time.Since(ctx.startTime[label])
}

// ElapsedTime returns the accumulated time spent in the named phase
// across every Build call made with this context.
func (ctx *BuildContext) ElapsedTime(label TimerLabel) time.Duration {
	if ctx == nil {
		return 0
	}
	return ctx.accTime[label]
}

func (ctx *BuildContext) progressf(format string, args ...interface{}) {
	if ctx == nil || ctx.logger == nil {
		return
	}
	ctx.logger.Printf("[contour] "+format, args...)
}

func (ctx *BuildContext) warningf(format string, args ...interface{}) {
	if ctx == nil || ctx.logger == nil {
		return
	}
	ctx.logger.Printf("[contour] warning: "+format, args...)
}
