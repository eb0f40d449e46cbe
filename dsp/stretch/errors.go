package stretch

import "errors"

var (
	// ErrUnsupportedChannelLayout is returned for channel counts other than
	// 1 or 2, or for input that does not match the configured count.
	ErrUnsupportedChannelLayout = errors.New("stretch: only mono or stereo audio is supported")

	// ErrInvalidConfiguration is returned when an engine rejects its block
	// or interval parameters. Engines wrap it; sessions pass it through.
	ErrInvalidConfiguration = errors.New("stretch: invalid engine configuration")

	// ErrInvalidTimeFactor is returned for time factors that are not
	// positive and finite.
	ErrInvalidTimeFactor = errors.New("stretch: time factor must be positive and finite")

	// ErrInvalidOffset is returned for an input whose cursor lies outside
	// its physical channels.
	ErrInvalidOffset = errors.New("stretch: input offset out of range")
)
