//
// Copyright (c) 2025, Antonio Chirizzi <antonio.chirizzi@gmail.com>
// All rights reserved.
//
// This code is released under 3-clause BSD license. Please see the
// file LICENSE
//

// Package sumresample converts integer time series between sample periods
// while keeping the total of the series exact. Every sample is a quantity
// accumulated over one period; the series is newest-first unless
// WithOrder(OldestFirst) says otherwise.
package sumresample

import (
	"errors"
	"fmt"
)

// --- Public API ---

// Resampler converts series from one sample period to another. It only holds
// configuration, so one value can serve any number of calls, and separate
// calls on separate buffers may run concurrently.
type Resampler struct {
	rawOld, rawNew       uint32 // periods as given
	oldPeriod, newPeriod uint32 // after reduction
	mode                 Mode
	cfg                  config
}

// New creates a Resampler for the given periods.
func New(oldPeriod, newPeriod uint32, opts ...Option) (*Resampler, error) {
	if oldPeriod == 0 || newPeriod == 0 {
		return nil, newError(ErrInvalidPeriod, 0, fmt.Sprintf("periods %d -> %d", oldPeriod, newPeriod))
	}
	cfg := newConfig(opts)
	if cfg.order != NewestFirst && cfg.order != OldestFirst {
		return nil, newError(ErrBadOrder, 0, cfg.order.String())
	}
	if cfg.partial != KeepPartial && cfg.partial != DropPartial {
		return nil, newError(ErrBadPolicy, 0, fmt.Sprintf("unknown partial policy %d", cfg.partial))
	}

	r := &Resampler{rawOld: oldPeriod, rawNew: newPeriod, cfg: cfg}
	r.oldPeriod, r.newPeriod = normalizePeriods(oldPeriod, newPeriod)
	switch {
	case r.oldPeriod < r.newPeriod:
		r.mode = ModeDownsample
	case r.oldPeriod > r.newPeriod:
		r.mode = ModeUpsample
	default:
		r.mode = ModeIdentity
	}
	return r, nil
}

// Mode returns the engine the periods route to.
func (r *Resampler) Mode() Mode {
	return r.mode
}

// Periods returns the periods the engines actually run with.
func (r *Resampler) Periods() (oldPeriod, newPeriod uint32) {
	return r.oldPeriod, r.newPeriod
}

// String describes the conversion, e.g. "600->300 upsample 2:1".
func (r *Resampler) String() string {
	return fmt.Sprintf("%d->%d %s %d:%d", r.rawOld, r.rawNew, r.mode, r.oldPeriod, r.newPeriod)
}

// OutputLen returns how many samples Resample produces for n inputs.
func (r *Resampler) OutputLen(n int) int {
	if n <= 0 {
		return 0
	}
	switch r.mode {
	case ModeDownsample:
		return downsampleLen(n, r.oldPeriod, r.newPeriod, r.cfg.partial)
	case ModeUpsample:
		return upsampleLen(n, r.oldPeriod, r.newPeriod, r.cfg.partial)
	default:
		return n
	}
}

// Resample converts in and returns a newly allocated series. in is not
// modified. An output longer than the series length limit is rejected with
// ErrInvalidBuffer before anything is allocated. On ErrOverrun or ErrOverflow the returned slice holds the outputs
// written before the failure.
func (r *Resampler) Resample(in []uint32) ([]uint32, error) {
	if err := validateBuffer(in, len(in)); err != nil {
		return nil, err
	}

	outLen := r.OutputLen(len(in))
	if outLen > maxSeriesLen {
		return nil, newError(ErrInvalidBuffer, 0, fmt.Sprintf("%d inputs resample to %d outputs, limit %d", len(in), outLen, maxSeriesLen))
	}
	out := make([]uint32, outLen)
	if r.mode == ModeIdentity {
		copy(out, in)
		return out, nil
	}

	src := in
	if r.cfg.order == OldestFirst {
		src = make([]uint32, len(in))
		copy(src, in)
		reverseSeries(src)
	}

	n, err := r.run(out, src, len(out))
	out = out[:n]
	if r.cfg.order == OldestFirst {
		reverseSeries(out)
	}
	return out, err
}

// ResampleInPlace converts buf[:length] and overwrites the front of buf with
// the result, returning the number of valid samples. Entries past that count
// are undefined. Upsampling writes at most len(buf) samples, keeping the
// newest part of the resampled series.
//
// Invalid arguments are reported before buf is touched.
func (r *Resampler) ResampleInPlace(buf []uint32, length int) (int, error) {
	if err := validateBuffer(buf, length); err != nil {
		return 0, err
	}
	if r.mode == ModeIdentity {
		return length, nil
	}

	src := buf[:length]
	if r.cfg.order == OldestFirst {
		reverseSeries(src)
	}

	n, err := r.run(buf, src, minInt(len(buf), r.OutputLen(length)))
	if r.cfg.order == OldestFirst {
		reverseSeries(buf[:n])
	}
	return n, err
}

// run dispatches to the engine. dst may alias src.
func (r *Resampler) run(dst, src []uint32, count int) (int, error) {
	switch r.mode {
	case ModeDownsample:
		return downsampleSeries(dst, src, r.oldPeriod, r.newPeriod, r.cfg.partial, r.cfg.tracer)
	case ModeUpsample:
		return upsampleSeries(dst, src, count, r.oldPeriod, r.newPeriod, r.cfg.tracer)
	default:
		return copy(dst, src), nil
	}
}

// Resample performs a one-shot conversion into a new slice.
func Resample(in []uint32, oldPeriod, newPeriod uint32, opts ...Option) ([]uint32, error) {
	r, err := New(oldPeriod, newPeriod, opts...)
	if err != nil {
		return nil, err
	}
	return r.Resample(in)
}

// ResampleInPlace performs a one-shot conversion of buf[:length] into the
// front of buf. It is the entry point for fixed, caller-owned buffers.
func ResampleInPlace(buf []uint32, length int, oldPeriod, newPeriod uint32, opts ...Option) (int, error) {
	r, err := New(oldPeriod, newPeriod, opts...)
	if err != nil {
		return 0, err
	}
	return r.ResampleInPlace(buf, length)
}

func validateBuffer(buf []uint32, length int) error {
	switch {
	case len(buf) == 0:
		return newError(ErrInvalidBuffer, 0, "empty buffer")
	case length <= 0:
		return newError(ErrInvalidBuffer, 0, fmt.Sprintf("length %d", length))
	case length > len(buf):
		return newError(ErrInvalidBuffer, 0, fmt.Sprintf("length %d exceeds buffer of %d", length, len(buf)))
	case length > maxSeriesLen:
		return newError(ErrInvalidBuffer, 0, fmt.Sprintf("length %d exceeds %d", length, maxSeriesLen))
	}
	return nil
}

// Version returns the library version string.
func Version() string {
	return "Go sum preserving resampler " + packageVersion
}

// StrError converts an error to a human-readable string.
func StrError(err error) string {
	if err == nil {
		return getErrorString(ErrNoError)
	}
	var re *ResampleError
	if errors.As(err, &re) {
		return getErrorString(re.Code)
	}
	return err.Error()
}

// getErrorString returns the base message for an ErrorCode.
func getErrorString(code ErrorCode) string {
	switch code {
	case ErrNoError:
		return "No error."
	case ErrInvalidPeriod:
		return "Sample periods must be greater than zero."
	case ErrInvalidBuffer:
		return "Buffer is empty or length is outside the buffer."
	case ErrOverrun:
		return "Internal error: more outputs written than inputs consumed."
	case ErrOverflow:
		return "Output sample does not fit 32 bits."
	case ErrBadDirection:
		return "Periods do not match the requested engine."
	case ErrBadOrder:
		return "Unknown series order."
	case ErrBadSeries:
		return "Invalid series."
	case ErrBadPolicy:
		return "Unknown partial period policy."
	case ErrExternal:
		return "Error outside the resampler."
	default:
		return ""
	}
}
