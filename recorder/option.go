package recorder

import "github.com/sgostarter/i/l"

type Options struct {
	logger      l.Wrapper
	synthesizer Synthesizer
	capacity    int
}

type Option func(o *Options)

func optionNew(option ...Option) *Options {
	opts := &Options{}
	for _, o := range option {
		o(opts)
	}

	if opts.logger == nil {
		opts.logger = l.NewNopLoggerWrapper()
	}

	if opts.synthesizer == nil {
		opts.synthesizer = UnitShift
	}

	return opts
}

func WithLogger(logger l.Wrapper) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

// WithSynthesizer replaces the boundary policy. A neighbour it places on the
// wrong side of, on top of, or infinitely far from its anchor is replaced by
// the UnitShift one.
func WithSynthesizer(synthesizer Synthesizer) Option {
	return func(o *Options) {
		o.synthesizer = synthesizer
	}
}

// WithCapacity preallocates room for n samples.
func WithCapacity(n int) Option {
	return func(o *Options) {
		o.capacity = n
	}
}
