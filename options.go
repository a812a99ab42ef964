//
// Copyright (c) 2025, Antonio Chirizzi <antonio.chirizzi@gmail.com>
// All rights reserved.
//
// This code is released under 3-clause BSD license. Please see the
// file LICENSE
//

package sumresample

type config struct {
	tracer  Tracer
	order   Order
	partial PartialPolicy
}

// Option configures a Resampler or a one-shot call.
type Option func(*config)

// WithTracer routes engine events to t. A nil tracer turns tracing off,
// including the SUMRESAMPLE_DEBUG default.
func WithTracer(t Tracer) Option {
	return func(cfg *config) {
		if t == nil {
			t = noopTracer{}
		}
		cfg.tracer = t
	}
}

// WithOrder declares the buffer layout of input and output.
func WithOrder(o Order) Option {
	return func(cfg *config) {
		cfg.order = o
	}
}

// WithPartialPolicy selects what happens to the partly covered oldest
// output period.
func WithPartialPolicy(p PartialPolicy) Option {
	return func(cfg *config) {
		cfg.partial = p
	}
}

func newConfig(opts []Option) config {
	cfg := config{order: NewestFirst, partial: KeepPartial}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.tracer == nil {
		cfg.tracer = defaultTracer()
	}
	return cfg
}
