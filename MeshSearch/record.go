package MeshSearch

import (
	"fmt"
	"io"
	"time"
)

// Phase labels the state of the convergence controller's state machine.
type Phase int

const (
	PhaseInitialPair Phase = iota
	PhaseAdaptiveJump
	PhaseBracketing
	PhaseBinarySearch
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialPair:
		return "InitialPair"
	case PhaseAdaptiveJump:
		return "AdaptiveJump"
	case PhaseBracketing:
		return "Bracketing"
	case PhaseBinarySearch:
		return "BinarySearch"
	case PhaseDone:
		return "Done"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Record is one append-only log entry; the controller emits exactly one per
// transition, so the log is an exhaustive account of the search.
type Record struct {
	Iteration  int
	Phase      Phase
	N          int
	Metric     float64
	PredictedN int  // 0 when no prediction was made
	Fallback   bool // peak-vorticity metric substituted for interpolation
	Failed     bool // the underlying solve failed
	WallTime   time.Duration
	Cumulative time.Duration
}

// RecordSink receives every controller iteration as it happens. The core
// owns no file format; sinks decide where records go.
type RecordSink interface {
	Append(Record)
}

// WriterSink formats one line per record, the default for the CLI.
type WriterSink struct {
	W io.Writer
}

func NewWriterSink(w io.Writer) WriterSink { return WriterSink{W: w} }

func (s WriterSink) Append(r Record) {
	extra := ""
	if r.PredictedN > 0 {
		extra = fmt.Sprintf(", predicted N = %d", r.PredictedN)
	}
	if r.Fallback {
		extra += " [peak-vorticity fallback]"
	}
	if r.Failed {
		extra += " [solve FAILED]"
	}
	fmt.Fprintf(s.W, "iter %3d  %-12s N = %5d, metric = %10.4g%s, wall = %v, total = %v\n",
		r.Iteration, r.Phase, r.N, r.Metric, extra, r.WallTime.Round(time.Millisecond),
		r.Cumulative.Round(time.Millisecond))
}

// NopSink discards records; used by tests.
type NopSink struct{}

func (NopSink) Append(Record) {}
