//
// Copyright (c) 2025, Antonio Chirizzi <antonio.chirizzi@gmail.com>
// All rights reserved.
//
// This code is released under 3-clause BSD license. Please see the
// file LICENSE
//

package sumresample

// Package wide constants.

const (
	packageVersion = "0.3.0"

	// debugEnvVar turns on stderr tracing when set to "1" and no tracer
	// was configured explicitly.
	debugEnvVar = "SUMRESAMPLE_DEBUG"

	// maxSeriesLen bounds a series so that length*period stays well inside
	// int64 for any pair of uint32 periods.
	maxSeriesLen = 1 << 30
)
