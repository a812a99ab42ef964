//
// Copyright (c) 2025, Antonio Chirizzi <antonio.chirizzi@gmail.com>
// All rights reserved.
//
// This code is released under 3-clause BSD license. Please see the
// file LICENSE
//

// common.go
package sumresample

import (
	"errors"
	"fmt"
	"math"
)

// --- Core Types ---

// Order identifies how a series is laid out in its buffer.
type Order int

const (
	// NewestFirst keeps the most recent sample at index 0. This is the
	// layout both engines work in.
	NewestFirst Order = 0
	// OldestFirst keeps the oldest sample at index 0. Input is reversed
	// before resampling and the output is reversed back.
	OldestFirst Order = 1
)

// String returns the name used in series documents.
func (o Order) String() string {
	switch o {
	case NewestFirst:
		return "newest-first"
	case OldestFirst:
		return "oldest-first"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

// ParseOrder maps a series document order name back to an Order.
// The empty string means NewestFirst.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "newest-first":
		return NewestFirst, nil
	case "oldest-first":
		return OldestFirst, nil
	default:
		return NewestFirst, newError(ErrBadOrder, 0, fmt.Sprintf("unknown order %q", s))
	}
}

// PartialPolicy decides what happens to an output period that is only
// partly covered by the input, which always sits at the oldest end.
type PartialPolicy int

const (
	// KeepPartial emits the partly covered period, so the output sum always
	// equals the input sum.
	KeepPartial PartialPolicy = 0
	// DropPartial discards it. Only whole output periods are written.
	DropPartial PartialPolicy = 1
)

// Mode is the engine a Resampler routes to.
type Mode int

const (
	ModeIdentity   Mode = 0
	ModeDownsample Mode = 1
	ModeUpsample   Mode = 2
)

func (m Mode) String() string {
	switch m {
	case ModeIdentity:
		return "identity"
	case ModeDownsample:
		return "downsample"
	case ModeUpsample:
		return "upsample"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ErrorCode defines the possible error values.
type ErrorCode int

const (
	ErrNoError       ErrorCode = iota
	ErrInvalidPeriod           // zero period
	ErrInvalidBuffer           // nil/empty buffer or length outside the buffer
	ErrOverrun                 // more outputs than inputs consumed (internal)
	ErrOverflow                // output value does not fit a sample
	ErrBadDirection            // engine called with the wrong period ordering
	ErrBadOrder
	ErrBadSeries
	ErrBadPolicy // unknown PartialPolicy
	ErrExternal  // error from outside the package (file I/O)
)

// ResampleError is the error returned by every operation of the package.
// Partial is the number of valid outputs written before the failure; it is
// only non-zero for errors detected mid-computation.
type ResampleError struct {
	Code    ErrorCode
	Partial int
	Detail  string
}

func (e *ResampleError) Error() string {
	msg := getErrorString(e.Code)
	if msg == "" {
		msg = "Unknown error"
	}
	if e.Detail != "" {
		return fmt.Sprintf("sumresample error %d: %s (%s)", e.Code, msg, e.Detail)
	}
	return fmt.Sprintf("sumresample error %d: %s", e.Code, msg)
}

// Is reports whether target is a *ResampleError with the same code, so
// errors.Is(err, ErrInvalidPeriod) works through wrapping.
func (e *ResampleError) Is(target error) bool {
	var code ErrorCode
	switch t := target.(type) {
	case *ResampleError:
		code = t.Code
	case ErrorCode:
		code = t
	default:
		return false
	}
	return e.Code == code
}

// Error lets an ErrorCode be used directly as an errors.Is target.
func (c ErrorCode) Error() string {
	return getErrorString(c)
}

func newError(code ErrorCode, partial int, detail string) *ResampleError {
	return &ResampleError{Code: code, Partial: partial, Detail: detail}
}

// CodeOf extracts the ErrorCode carried by err. Errors from outside the
// package map to ErrExternal when they wrap nothing known.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrNoError
	}
	var re *ResampleError
	if errors.As(err, &re) {
		return re.Code
	}
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}
	return ErrExternal
}

// PartialCount returns the partial output count carried by err, or 0.
func PartialCount(err error) int {
	var re *ResampleError
	if errors.As(err, &re) {
		return re.Partial
	}
	return 0
}

// --- Internal Helper Functions ---

// roundHalfUpDiv returns num/den rounded to nearest, ties up.
// den must be non-zero.
func roundHalfUpDiv(num, den uint64) uint64 {
	q := num / den
	if 2*(num-q*den) >= den {
		q++
	}
	return q
}

// fitsSample reports whether v can be stored in a uint32 sample.
func fitsSample(v int64) bool {
	return v >= 0 && v <= math.MaxUint32
}

func reverseSeries(data []uint32) {
	left := 0
	right := len(data) - 1
	for left < right {
		data[left], data[right] = data[right], data[left]
		left++
		right--
	}
}

// sumSeries adds up a series in 64 bits.
func sumSeries(data []uint32) uint64 {
	var total uint64
	for _, v := range data {
		total += uint64(v)
	}
	return total
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
