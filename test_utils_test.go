//
// Copyright (c) 2025, Antonio Chirizzi <antonio.chirizzi@gmail.com>
// All rights reserved.
//
// This code is released under 3-clause BSD license. Please see the
// file LICENSE
//

package sumresample

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// --- Shared Test Helper Functions ---

// rampSeries is the series the sweep tool starts from.
var rampSeries = []uint32{100, 200, 300, 400, 500, 600, 700, 800, 900, 1000}

// cloneSeries returns a copy so tests never share backing arrays.
func cloneSeries(s []uint32) []uint32 {
	out := make([]uint32, len(s))
	copy(out, s)
	return out
}

// randomSeries returns n values in [0, maxValue].
func randomSeries(rng *rand.Rand, n int, maxValue int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(rng.Intn(maxValue + 1))
	}
	return out
}

// toFloat64 widens a series for gonum.
func toFloat64(s []uint32) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

// floatSum is the float64 total of a series. Exact for the magnitudes used
// in tests (well below 2^53).
func floatSum(s []uint32) float64 {
	return floats.Sum(toFloat64(s))
}

// reversed returns a reversed copy.
func reversed(s []uint32) []uint32 {
	out := cloneSeries(s)
	reverseSeries(out)
	return out
}

// eventRecorder collects trace events.
type eventRecorder struct {
	events []TraceEvent
}

func (r *eventRecorder) Trace(ev TraceEvent) {
	r.events = append(r.events, ev)
}

func (r *eventRecorder) count(kind EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
