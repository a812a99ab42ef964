//
// Copyright (c) 2025, Antonio Chirizzi <antonio.chirizzi@gmail.com>
// All rights reserved.
//
// This code is released under 3-clause BSD license. Please see the
// file LICENSE
//

package sumresample

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"
)

// TestSweep mirrors the sweep tool: every old period from 600 to 1200 in
// steps of 200 resampled to 300 keeps the ramp total of 5500.
func TestSweep(t *testing.T) {
	wantLen := map[uint32]int{600: 20, 800: 27, 1000: 34, 1200: 40}

	for interval := uint32(600); interval <= 20*60; interval += 200 {
		t.Run(fmt.Sprintf("Interval_%d", interval), func(t *testing.T) {
			out, err := Resample(rampSeries, interval, 5*60)
			if err != nil {
				t.Fatalf("Resample failed: %v", err)
			}
			if sumSeries(out) != 5500 {
				t.Errorf("sum mismatch: orig 5500 (%d samp) new %d (%d samp)", len(rampSeries), sumSeries(out), len(out))
			}
			if len(out) != wantLen[interval] {
				t.Errorf("got %d samples, want %d", len(out), wantLen[interval])
			}
			t.Logf("%d -> 300: %d samples", interval, len(out))
		})
	}
}

func TestResamplerRouting(t *testing.T) {
	tests := []struct {
		oldPeriod, newPeriod uint32
		mode                 Mode
		reducedOld           uint32
		reducedNew           uint32
	}{
		{600, 300, ModeUpsample, 600, 300},
		{300, 600, ModeDownsample, 300, 600},
		{300, 300, ModeIdentity, 300, 300},
		{800, 300, ModeUpsample, 8, 3},
		{300, 700, ModeDownsample, 3, 7},
	}
	for _, tt := range tests {
		r, err := New(tt.oldPeriod, tt.newPeriod)
		if err != nil {
			t.Fatalf("New(%d, %d) failed: %v", tt.oldPeriod, tt.newPeriod, err)
		}
		if r.Mode() != tt.mode {
			t.Errorf("%d->%d: mode %s, want %s", tt.oldPeriod, tt.newPeriod, r.Mode(), tt.mode)
		}
		if o, n := r.Periods(); o != tt.reducedOld || n != tt.reducedNew {
			t.Errorf("%d->%d: periods %d:%d, want %d:%d", tt.oldPeriod, tt.newPeriod, o, n, tt.reducedOld, tt.reducedNew)
		}
	}

	r, _ := New(800, 300)
	if got := r.String(); got != "800->300 upsample 8:3" {
		t.Errorf("String() = %q", got)
	}
}

func TestIdentity(t *testing.T) {
	buf := cloneSeries(rampSeries)
	n, err := ResampleInPlace(buf, len(buf), 300, 300)
	if err != nil {
		t.Fatalf("ResampleInPlace failed: %v", err)
	}
	if n != len(rampSeries) || !slices.Equal(buf, rampSeries) {
		t.Errorf("identity changed the series: n=%d %v", n, buf)
	}

	out, err := Resample(rampSeries, 300, 300, WithOrder(OldestFirst))
	if err != nil {
		t.Fatalf("Resample failed: %v", err)
	}
	if !slices.Equal(out, rampSeries) {
		t.Errorf("identity changed the series: %v", out)
	}
	out[0] = 1
	if rampSeries[0] != 100 {
		t.Fatal("Resample returned the caller's slice")
	}
}

func TestInvalidArguments(t *testing.T) {
	buf := cloneSeries(rampSeries)

	tests := []struct {
		name string
		call func() (int, error)
		want ErrorCode
	}{
		{"ZeroOldPeriod", func() (int, error) { return ResampleInPlace(buf, len(buf), 0, 300) }, ErrInvalidPeriod},
		{"ZeroNewPeriod", func() (int, error) { return ResampleInPlace(buf, len(buf), 600, 0) }, ErrInvalidPeriod},
		{"NilBuffer", func() (int, error) { return ResampleInPlace(nil, 0, 600, 300) }, ErrInvalidBuffer},
		{"ZeroLength", func() (int, error) { return ResampleInPlace(buf, 0, 600, 300) }, ErrInvalidBuffer},
		{"NegativeLength", func() (int, error) { return ResampleInPlace(buf, -1, 600, 300) }, ErrInvalidBuffer},
		{"LengthPastBuffer", func() (int, error) { return ResampleInPlace(buf, len(buf)+1, 600, 300) }, ErrInvalidBuffer},
		{"BadOrder", func() (int, error) { return ResampleInPlace(buf, len(buf), 600, 300, WithOrder(Order(7))) }, ErrBadOrder},
		{"BadPartialPolicy", func() (int, error) {
			return ResampleInPlace(buf, len(buf), 600, 300, WithPartialPolicy(PartialPolicy(9)))
		}, ErrBadPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.call()
			if err == nil {
				t.Fatal("expected an error")
			}
			if n != 0 {
				t.Errorf("count %d returned with a validation error", n)
			}
			if CodeOf(err) != tt.want {
				t.Errorf("code %d (%s), want %d", CodeOf(err), StrError(err), tt.want)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("errors.Is(%v, %d) is false", err, tt.want)
			}
			if !slices.Equal(buf, rampSeries) {
				t.Fatalf("buffer modified before validation failed: %v", buf)
			}
		})
	}

	if _, err := Resample(nil, 600, 300); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("Resample(nil): expected ErrInvalidBuffer, got %v", err)
	}
	if _, err := Resample(rampSeries, 0, 300); !errors.Is(err, &ResampleError{Code: ErrInvalidPeriod}) {
		t.Errorf("Resample zero period: expected ErrInvalidPeriod, got %v", err)
	}
}

func TestOrdering(t *testing.T) {
	oldestFirst := reversed(rampSeries)

	out, err := Resample(oldestFirst, 300, 900, WithOrder(OldestFirst))
	if err != nil {
		t.Fatalf("Resample failed: %v", err)
	}
	if want := []uint32{1000, 2400, 1500, 600}; !slices.Equal(out, want) {
		t.Errorf("oldest-first downsample %v, want %v", out, want)
	}
	if !slices.Equal(oldestFirst, reversed(rampSeries)) {
		t.Error("Resample modified its input")
	}

	for _, periods := range [][2]uint32{{300, 900}, {3, 7}, {800, 300}, {7, 3}} {
		newest, err := Resample(rampSeries, periods[0], periods[1])
		if err != nil {
			t.Fatal(err)
		}
		oldest, err := Resample(oldestFirst, periods[0], periods[1], WithOrder(OldestFirst))
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(oldest, reversed(newest)) {
			t.Errorf("%v: oldest-first %v is not the reverse of %v", periods, oldest, newest)
		}

		buf := make([]uint32, 40)
		copy(buf, oldestFirst)
		n, err := ResampleInPlace(buf, len(oldestFirst), periods[0], periods[1], WithOrder(OldestFirst))
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(buf[:n], reversed(newest[:n])) {
			t.Errorf("%v: in place oldest-first %v, want %v", periods, buf[:n], reversed(newest[:n]))
		}
	}
}

func TestOutputLen(t *testing.T) {
	tests := []struct {
		oldPeriod, newPeriod uint32
		partial              PartialPolicy
		n, want              int
	}{
		{600, 300, KeepPartial, 10, 20},
		{300, 900, KeepPartial, 10, 4},
		{300, 900, DropPartial, 10, 3},
		{800, 300, KeepPartial, 10, 27},
		{800, 300, DropPartial, 10, 26},
		{300, 300, DropPartial, 10, 10},
		{300, 600, KeepPartial, 0, 0},
	}
	for _, tt := range tests {
		r, err := New(tt.oldPeriod, tt.newPeriod, WithPartialPolicy(tt.partial))
		if err != nil {
			t.Fatal(err)
		}
		if got := r.OutputLen(tt.n); got != tt.want {
			t.Errorf("%d->%d partial=%d: OutputLen(%d) = %d, want %d", tt.oldPeriod, tt.newPeriod, tt.partial, tt.n, got, tt.want)
		}
	}
}

func TestDropPartialUpsample(t *testing.T) {
	out, err := Resample(rampSeries, 8, 3, WithPartialPolicy(DropPartial))
	if err != nil {
		t.Fatalf("Resample failed: %v", err)
	}
	full, _ := Resample(rampSeries, 8, 3)
	if len(out) != 26 {
		t.Fatalf("got %d samples, want 26", len(out))
	}
	// Dropping the partly covered oldest output shifts the window inside
	// the oldest sample, so only the last output can differ.
	if !slices.Equal(out[:25], full[:25]) {
		t.Errorf("newest outputs differ: %v vs %v", out, full)
	}
	if sumSeries(out) >= 5500 {
		t.Errorf("dropping must lose some of the total, sum %d", sumSeries(out))
	}
}

func TestStrError(t *testing.T) {
	if StrError(nil) != "No error." {
		t.Errorf("StrError(nil) = %q", StrError(nil))
	}
	_, err := Resample(rampSeries, 0, 1)
	if got := StrError(err); got != getErrorString(ErrInvalidPeriod) {
		t.Errorf("StrError = %q", got)
	}
	if !strings.HasPrefix(err.Error(), "sumresample error 1:") {
		t.Errorf("Error() = %q", err.Error())
	}
	if got := StrError(errors.New("plain")); got != "plain" {
		t.Errorf("StrError(plain) = %q", got)
	}
	if CodeOf(nil) != ErrNoError {
		t.Error("CodeOf(nil) must be ErrNoError")
	}
	if CodeOf(errors.New("plain")) != ErrExternal {
		t.Errorf("CodeOf(plain) = %d, want ErrExternal", CodeOf(errors.New("plain")))
	}
	wrapped := fmt.Errorf("outer: %w", newError(ErrOverrun, 3, "x"))
	if CodeOf(wrapped) != ErrOverrun || PartialCount(wrapped) != 3 {
		t.Errorf("wrapped: code %d partial %d", CodeOf(wrapped), PartialCount(wrapped))
	}
	if !strings.Contains(Version(), packageVersion) {
		t.Errorf("Version() = %q", Version())
	}
}

func TestOutputLimit(t *testing.T) {
	tests := []struct {
		name                 string
		length               int
		oldPeriod, newPeriod uint32
	}{
		{"MaxRatio", 1 << 16, math.MaxUint32, 1},
		{"JustOverLimit", 1 << 10, 1 << 21, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]uint32, tt.length)
			out, err := Resample(in, tt.oldPeriod, tt.newPeriod)
			if CodeOf(err) != ErrInvalidBuffer {
				t.Fatalf("expected ErrInvalidBuffer, got %v", err)
			}
			if out != nil {
				t.Errorf("expected no output, got %d samples", len(out))
			}
			t.Logf("%s: %v", tt.name, err)
		})
	}

	// Exactly at the limit is still allowed to be sized.
	r, err := New(1<<20, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n := r.OutputLen(1 << 10); n != maxSeriesLen {
		t.Errorf("OutputLen = %d, want %d", n, maxSeriesLen)
	}
}
