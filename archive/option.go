package archive

type Options struct {
	format      Format
	compression Compression
}

type Option func(o *Options)

func optionNew(option ...Option) *Options {
	opts := &Options{
		format:      FormatJSON,
		compression: CompressionNone,
	}

	for _, o := range option {
		o(opts)
	}

	return opts
}

func WithFormat(format Format) Option {
	return func(o *Options) {
		o.format = format
	}
}

func WithCompression(compression Compression) Option {
	return func(o *Options) {
		o.compression = compression
	}
}
