package core

// ProcessorConfig defines common block-processing settings.
//
// BlockSize and IntervalSize of 0 mean "derive from SampleRate".
type ProcessorConfig struct {
	Channels     int
	SampleRate   float64
	BlockSize    int
	IntervalSize int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns mono 44.1 kHz with derived block sizes.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		Channels:   1,
		SampleRate: 44100,
	}
}

// WithChannels sets the channel count.
func WithChannels(channels int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the analysis block size in samples.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithIntervalSize sets the hop between blocks in samples.
func WithIntervalSize(intervalSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if intervalSize > 0 {
			cfg.IntervalSize = intervalSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
