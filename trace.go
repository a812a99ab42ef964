//
// Copyright (c) 2025, Antonio Chirizzi <antonio.chirizzi@gmail.com>
// All rights reserved.
//
// This code is released under 3-clause BSD license. Please see the
// file LICENSE
//

package sumresample

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
)

// EventKind tells which decision point produced a TraceEvent.
type EventKind int

const (
	EventInput     EventKind = iota // input sample accumulated
	EventBoundary                   // output closed on an exact boundary
	EventSplit                      // output closed mid-sample, remainder carried
	EventBorrow                     // output closed mid-sample, fraction borrowed from the newer sample
	EventWindow                     // part of the oldest sample excluded from the output window
	EventPartial                    // partly covered oldest output period emitted
	EventOverrun                    // write cursor passed the read cursor
)

func (k EventKind) String() string {
	switch k {
	case EventInput:
		return "input"
	case EventBoundary:
		return "boundary"
	case EventSplit:
		return "split"
	case EventBorrow:
		return "borrow"
	case EventWindow:
		return "window"
	case EventPartial:
		return "partial"
	case EventOverrun:
		return "overrun"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// TraceEvent is one step of an engine. Input and Output are buffer indices
// (-1 when not applicable), Phase and Carry the state after the step and
// Value the sample read or written.
type TraceEvent struct {
	Mode   Mode
	Kind   EventKind
	Input  int
	Output int
	Phase  int64
	Value  int64
	Carry  int64
}

// Tracer receives engine events. It must not retain or modify the buffers.
type Tracer interface {
	Trace(ev TraceEvent)
}

// TracerFunc adapts a plain function to the Tracer interface.
type TracerFunc func(ev TraceEvent)

func (f TracerFunc) Trace(ev TraceEvent) { f(ev) }

// noopTracer is used when tracing is off so engines never check for nil.
type noopTracer struct{}

func (noopTracer) Trace(TraceEvent) {}

// slogTracer writes events as debug records with typed attributes.
type slogTracer struct {
	logger *slog.Logger
}

// NewSlogTracer returns a Tracer logging every event at debug level.
// A nil logger means slog.Default().
func NewSlogTracer(logger *slog.Logger) Tracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogTracer{logger: logger}
}

func (t *slogTracer) Trace(ev TraceEvent) {
	level := slog.LevelDebug
	if ev.Kind == EventOverrun {
		level = slog.LevelError
	}
	t.logger.LogAttrs(context.Background(), level, "sumresample: "+ev.Kind.String(),
		slog.String("mode", ev.Mode.String()),
		slog.Int("input", ev.Input),
		slog.Int("output", ev.Output),
		slog.Int64("phase", ev.Phase),
		slog.Int64("value", ev.Value),
		slog.Int64("carry", ev.Carry),
	)
}

// logTracer prints one line per event.
type logTracer struct {
	logger *log.Logger
}

// NewLogTracer returns a Tracer printing plain text lines to logger.
// A nil logger means log.Default().
func NewLogTracer(logger *log.Logger) Tracer {
	if logger == nil {
		logger = log.Default()
	}
	return &logTracer{logger: logger}
}

func (t *logTracer) Trace(ev TraceEvent) {
	switch ev.Kind {
	case EventInput:
		t.logger.Printf("%s in %2d - Phase: %d, Value: %d, Carry: %d", ev.Mode, ev.Input, ev.Phase, ev.Value, ev.Carry)
	case EventOverrun:
		t.logger.Printf("%s Overrun! in: %d, out: %d", ev.Mode, ev.Input, ev.Output)
	default:
		t.logger.Printf("%s out %2d %s phase %d, val %d, %d carry", ev.Mode, ev.Output, ev.Kind, ev.Phase, ev.Value, ev.Carry)
	}
}

// defaultTracer honours SUMRESAMPLE_DEBUG=1.
func defaultTracer() Tracer {
	if os.Getenv(debugEnvVar) == "1" {
		return NewLogTracer(log.New(os.Stderr, "sumresample: ", log.Lmicroseconds))
	}
	return noopTracer{}
}
