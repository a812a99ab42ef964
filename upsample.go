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

// --- Upsample Engine ---

// upsampleSeries splits src into count shorter-period samples written to
// dst[:count]. Both are newest-first; the engine walks from the oldest input
// that touches the output window toward index 0 and fills dst from
// dst[count-1] down, so dst may be src itself as long as len(dst) >= count.
//
// The window is the newest count*newPeriod time units. When that is shorter
// than the input, it starts inside src[start] and the part of that sample
// before the window is taken out of the carry up front. When it is longer,
// the oldest output is only partly covered.
//
// Each input value v is handed out by cumulative rounding: the output that
// closes at offset phase into the sample receives round(v*phase/old) minus
// what earlier outputs already took, so every input is distributed exactly.
// An output that straddles two inputs keeps the remainder of the older one
// in carry and borrows the leading fraction of the newer one.
func upsampleSeries(dst, src []uint32, count int, oldPeriod, newPeriod uint32, tr Tracer) (int, error) {
	if oldPeriod == 0 || newPeriod == 0 {
		return 0, newError(ErrInvalidPeriod, 0, "")
	}
	if oldPeriod <= newPeriod {
		return 0, newError(ErrBadDirection, 0, fmt.Sprintf("upsample needs old period > new period, got %d <= %d", oldPeriod, newPeriod))
	}
	if count > len(dst) {
		return 0, newError(ErrInvalidBuffer, 0, fmt.Sprintf("%d outputs do not fit %d slots", count, len(dst)))
	}
	if count <= 0 || len(src) == 0 {
		return 0, nil
	}

	prev := int64(oldPeriod)
	next := int64(newPeriod)
	duration := int64(len(src)) * prev
	window := int64(count) * next
	if window-duration >= next {
		return 0, newError(ErrInvalidBuffer, 0, fmt.Sprintf("%d outputs exceed the %d inputs", count, len(src)))
	}

	start := len(src) - 1
	var phase, carry int64
	if window >= duration {
		// Oldest output period begins before the data
		phase = next - (window - duration)
	} else {
		start = int((window - 1) / prev)
		excluded := int64(start+1)*prev - window
		phase = excluded + next
		carry = -int64(roundHalfUpDiv(uint64(src[start])*uint64(excluded), uint64(prev)))
		if excluded > 0 {
			tr.Trace(TraceEvent{Mode: ModeUpsample, Kind: EventWindow, Input: start, Output: -1, Phase: excluded, Value: int64(src[start]), Carry: carry})
		}
	}

	partialFirst := window > duration
	addr := count - 1
	for i := start; i >= 0 && addr >= 0; i-- {
		if addr < i {
			tr.Trace(TraceEvent{Mode: ModeUpsample, Kind: EventOverrun, Input: i, Output: addr})
			return (count - 1) - addr, newError(ErrOverrun, (count-1)-addr, fmt.Sprintf("output address %d below input %d", addr, i))
		}

		value := int64(src[i])
		carry += value
		tr.Trace(TraceEvent{Mode: ModeUpsample, Kind: EventInput, Input: i, Output: -1, Phase: phase, Value: value, Carry: carry})

		straddles := phase < next
		for phase <= prev && addr >= 0 {
			taken := int64(roundHalfUpDiv(uint64(value)*uint64(phase), uint64(prev)))
			rest := value - taken
			out := carry - rest
			if !fitsSample(out) {
				return (count - 1) - addr, newError(ErrOverflow, (count-1)-addr, fmt.Sprintf("output %d value %d", addr, out))
			}
			dst[addr] = uint32(out)

			kind := EventSplit
			switch {
			case partialFirst:
				kind = EventPartial
			case straddles:
				kind = EventBorrow
			case phase == prev:
				kind = EventBoundary
			}
			tr.Trace(TraceEvent{Mode: ModeUpsample, Kind: kind, Input: i, Output: addr, Phase: phase, Value: out, Carry: rest})

			addr--
			carry = rest
			phase += next
			straddles = false
			partialFirst = false
		}

		phase -= prev
	}

	return (count - 1) - addr, nil
}

// upsampleLen is the number of outputs covering n inputs.
func upsampleLen(n int, oldPeriod, newPeriod uint32, partial PartialPolicy) int {
	return periodsCovered(n, oldPeriod, newPeriod, partial)
}

// Upsample runs the upsample engine in place over buf[:length] with the
// given periods, which must satisfy oldPeriod > newPeriod after reduction.
// At most len(buf) outputs are written: the newest part of the resampled
// series. It returns the number of valid outputs at the front of buf.
func Upsample(buf []uint32, length int, oldPeriod, newPeriod uint32, opts ...Option) (int, error) {
	r, err := New(oldPeriod, newPeriod, opts...)
	if err != nil {
		return 0, err
	}
	if r.mode != ModeUpsample {
		return 0, newError(ErrBadDirection, 0, fmt.Sprintf("periods %d -> %d do not upsample", oldPeriod, newPeriod))
	}
	return r.ResampleInPlace(buf, length)
}
