//
// Copyright (c) 2025, Antonio Chirizzi <antonio.chirizzi@gmail.com>
// All rights reserved.
//
// This code is released under 3-clause BSD license. Please see the
// file LICENSE
//

package sumresample

import (
	"fmt"
)

// --- Downsample Engine ---

// downsampleSeries combines src into fewer, longer-period samples written to
// the front of dst. dst may be src itself: output k is written only after
// input k has been read, which the overrun check enforces.
//
// src is newest-first, so output boundaries line up with the most recent
// instant and the partly covered period, if any, is the last output.
func downsampleSeries(dst, src []uint32, oldPeriod, newPeriod uint32, partial PartialPolicy, tr Tracer) (int, error) {
	if oldPeriod == 0 || newPeriod == 0 {
		return 0, newError(ErrInvalidPeriod, 0, "")
	}
	if oldPeriod >= newPeriod {
		return 0, newError(ErrBadDirection, 0, fmt.Sprintf("downsample needs old period < new period, got %d >= %d", oldPeriod, newPeriod))
	}

	prev := int64(oldPeriod)
	next := int64(newPeriod)
	written := 0
	var phase, carry int64

	for i, v := range src {
		value := int64(v)

		phase += prev
		carry += value
		tr.Trace(TraceEvent{Mode: ModeDownsample, Kind: EventInput, Input: i, Output: -1, Phase: phase, Value: value, Carry: carry})

		if phase == next { // Even border
			if err := storeDownsampled(dst, written, i+1, carry, tr); err != nil {
				return written, err
			}
			tr.Trace(TraceEvent{Mode: ModeDownsample, Kind: EventBoundary, Input: i, Output: written, Phase: phase, Value: carry})
			written++
			carry = 0
			phase = 0
		} else if phase > next { // Border falls inside this input
			overshoot := phase - next
			carryToNext := int64(roundHalfUpDiv(uint64(value)*uint64(overshoot), uint64(prev)))

			carry -= carryToNext
			if err := storeDownsampled(dst, written, i+1, carry, tr); err != nil {
				return written, err
			}
			tr.Trace(TraceEvent{Mode: ModeDownsample, Kind: EventSplit, Input: i, Output: written, Phase: overshoot, Value: carry, Carry: carryToNext})
			written++
			phase = overshoot
			carry = carryToNext
		}
	}

	if phase > 0 && partial == KeepPartial {
		if err := storeDownsampled(dst, written, len(src), carry, tr); err != nil {
			return written, err
		}
		tr.Trace(TraceEvent{Mode: ModeDownsample, Kind: EventPartial, Input: len(src) - 1, Output: written, Phase: phase, Value: carry})
		written++
	}

	return written, nil
}

// storeDownsampled writes output number idx after consumed inputs were read.
// Writing more outputs than inputs consumed would overwrite unread input
// when dst aliases src; that is reported as ErrOverrun with idx as the
// partial count.
func storeDownsampled(dst []uint32, idx, consumed int, value int64, tr Tracer) error {
	if overruns(idx+1, consumed) || idx >= len(dst) {
		tr.Trace(TraceEvent{Mode: ModeDownsample, Kind: EventOverrun, Input: consumed - 1, Output: idx, Value: value})
		return newError(ErrOverrun, idx, fmt.Sprintf("output %d after %d inputs (dst len %d)", idx+1, consumed, len(dst)))
	}
	if !fitsSample(value) {
		return newError(ErrOverflow, idx, fmt.Sprintf("output %d value %d", idx, value))
	}
	dst[idx] = uint32(value)
	return nil
}

// overruns is the monotonic non-overrun invariant of the downsample engine.
func overruns(outputs, consumed int) bool {
	return outputs > consumed
}

// downsampleLen is the number of outputs downsampleSeries writes for n inputs.
func downsampleLen(n int, oldPeriod, newPeriod uint32, partial PartialPolicy) int {
	return periodsCovered(n, oldPeriod, newPeriod, partial)
}

// periodsCovered counts the new periods spanned by n old periods, rounding
// the partly covered one up or down according to partial.
func periodsCovered(n int, oldPeriod, newPeriod uint32, partial PartialPolicy) int {
	duration := int64(n) * int64(oldPeriod)
	count := duration / int64(newPeriod)
	if partial == KeepPartial && duration%int64(newPeriod) != 0 {
		count++
	}
	return int(count)
}

// Downsample runs the downsample engine in place over buf[:length] with the
// given periods, which must satisfy oldPeriod < newPeriod after reduction.
// It returns the number of valid outputs at the front of buf.
func Downsample(buf []uint32, length int, oldPeriod, newPeriod uint32, opts ...Option) (int, error) {
	r, err := New(oldPeriod, newPeriod, opts...)
	if err != nil {
		return 0, err
	}
	if r.mode != ModeDownsample {
		return 0, newError(ErrBadDirection, 0, fmt.Sprintf("periods %d -> %d do not downsample", oldPeriod, newPeriod))
	}
	return r.ResampleInPlace(buf, length)
}
