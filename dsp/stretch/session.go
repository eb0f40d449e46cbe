package stretch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-stretch/dsp/buffer"
	"github.com/cwbudde/algo-stretch/dsp/core"
	"go.uber.org/zap"
)

// Session turns one finite stretch request into a latency-compensated
// sequence of Engine calls. It owns the engine for its lifetime.
//
// Session is not safe for concurrent use.
type Session struct {
	engine Engine
	pool   *buffer.Pool
	logger *zap.Logger

	channels    int
	sampleRate  float64
	timeFactor  float64
	exactLength bool
}

// NewSession wraps engine. The session starts unconfigured with a time
// factor of 1 and exact length disabled.
func NewSession(engine Engine, opts ...Option) *Session {
	s := &Session{
		engine:     engine,
		pool:       buffer.NewPool(),
		logger:     zap.NewNop(),
		timeFactor: 1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Engine returns the wrapped engine.
func (s *Session) Engine() Engine { return s.engine }

// Channels returns the configured channel count, or 0 before configuration.
func (s *Session) Channels() int { return s.channels }

// SampleRate returns the sample rate given to the last Preset.
func (s *Session) SampleRate() float64 { return s.sampleRate }

// TimeFactor returns the ratio of output duration to input duration.
func (s *Session) TimeFactor() float64 { return s.timeFactor }

// ExactLength reports whether flushed tail samples are trimmed away.
func (s *Session) ExactLength() bool { return s.exactLength }

// BlockSamples returns the engine's block size.
func (s *Session) BlockSamples() int { return s.engine.BlockSamples() }

// IntervalSamples returns the engine's hop size.
func (s *Session) IntervalSamples() int { return s.engine.IntervalSamples() }

// InputLatency returns the engine's current input latency.
func (s *Session) InputLatency() int { return s.engine.InputLatency() }

// OutputLatency returns the engine's current output latency.
func (s *Session) OutputLatency() int { return s.engine.OutputLatency() }

// Configure sets the engine's block and interval sizes explicitly.
func (s *Session) Configure(channels, blockSamples, intervalSamples int) error {
	err := checkChannels(channels)
	if err != nil {
		return err
	}

	s.engine.Reset()

	err = s.engine.Configure(channels, blockSamples, intervalSamples)
	if err != nil {
		return err
	}

	s.channels = channels

	return nil
}

// Preset configures the engine from the sample rate. cheaper trades
// quality for speed; exactLength sets the trimming policy.
func (s *Session) Preset(channels int, sampleRate float64, cheaper, exactLength bool) error {
	err := checkChannels(channels)
	if err != nil {
		return err
	}

	s.engine.Reset()

	if cheaper {
		err = s.engine.PresetCheaper(channels, sampleRate)
	} else {
		err = s.engine.PresetDefault(channels, sampleRate)
	}

	if err != nil {
		return err
	}

	s.channels = channels
	s.sampleRate = sampleRate
	s.exactLength = exactLength

	return nil
}

// SetTimeFactor sets the ratio of output duration to input duration.
// Non-positive and non-finite factors are rejected and the previous factor
// is kept.
func (s *Session) SetTimeFactor(factor float64) error {
	if !core.IsFinitePositive(factor) {
		return fmt.Errorf("%w: %v", ErrInvalidTimeFactor, factor)
	}

	s.timeFactor = factor

	return nil
}

// SetExactLength sets the trimming policy for subsequent calls.
func (s *Session) SetExactLength(exact bool) { s.exactLength = exact }

// SetTransposeFactor sets a pitch multiplier. tonalityLimit is a
// normalised frequency (cycles per sample); 0 disables it.
func (s *Session) SetTransposeFactor(multiplier, tonalityLimit float64) {
	s.engine.SetTransposeFactor(multiplier, tonalityLimit)
}

// SetTransposeSemitones sets the pitch shift in semitones.
func (s *Session) SetTransposeSemitones(semitones, tonalityLimit float64) {
	s.engine.SetTransposeSemitones(semitones, tonalityLimit)
}

// SetFreqMap installs a custom frequency mapping.
func (s *Session) SetFreqMap(m FreqMap) {
	s.engine.SetFreqMap(m)
}

// Reset clears the engine's history.
func (s *Session) Reset() {
	s.engine.Reset()
}

// OutputLength returns round(inputLength*timeFactor), rounding half away
// from zero.
func (s *Session) OutputLength(inputLength int) int {
	return int(math.Round(float64(inputLength) * s.timeFactor))
}

// ResultLength returns the per-channel length Process returns for
// inputLength samples under the current configuration.
func (s *Session) ResultLength(inputLength int) int {
	n := s.OutputLength(inputLength)
	if s.exactLength {
		return n
	}

	return n + s.tailSamples()
}

func (s *Session) tailSamples() int {
	if s.exactLength {
		return s.engine.OutputLatency()
	}

	return s.engine.OutputLatency() + s.engine.InputLatency()
}

// Process stretches input shaped (channels, samples). The returned slices
// are owned by the caller.
func (s *Session) Process(input [][]float64) ([][]float64, error) {
	err := checkChannels(len(input))
	if err != nil {
		return nil, err
	}

	in, err := buffer.FromChannels(input)
	if err != nil {
		return nil, err
	}

	out, err := s.ProcessBuffer(in)
	if err != nil {
		return nil, err
	}

	return out.ToChannels(), nil
}

// ProcessBuffer stretches in, reading every logical index from its cursor
// to the end of its channels. A reader that reports an Offset outside
// [0, Len] is rejected. The returned buffer is owned by the caller.
//
// The engine is reset before ProcessBuffer returns, on success and on
// failure.
func (s *Session) ProcessBuffer(in buffer.Reader) (*buffer.Buffer, error) {
	channels := in.NumChannels()

	err := checkChannels(channels)
	if err != nil {
		return nil, err
	}

	inputLength, err := logicalLength(in)
	if err != nil {
		return nil, err
	}

	if s.channels == 0 {
		err = s.Preset(channels, DefaultSampleRate, false, s.exactLength)
		if err != nil {
			return nil, err
		}
	}

	if channels != s.channels {
		return nil, fmt.Errorf("%w: input has %d channels, session is configured for %d",
			ErrUnsupportedChannelLayout, channels, s.channels)
	}

	defer s.engine.Reset()

	inputLatency := s.engine.InputLatency()
	outputLength := s.OutputLength(inputLength)
	tail := s.tailSamples()

	// Trailing silence past the real input lets the engine look ahead
	// beyond the end of the signal.
	input := s.pool.Get(channels, inputLength+inputLatency)
	defer s.pool.Put(input)

	copyInput(input, in, inputLength)

	output := s.pool.Get(channels, outputLength+tail)
	defer s.pool.Put(output)

	s.logger.Debug("stretch: processing",
		zap.Int("channels", channels),
		zap.Int("input_length", inputLength),
		zap.Int("output_length", outputLength),
		zap.Int("input_latency", inputLatency),
		zap.Int("output_latency", s.engine.OutputLatency()),
		zap.Int("tail", tail),
		zap.Float64("time_factor", s.timeFactor),
		zap.Bool("exact_length", s.exactLength),
	)

	err = s.engine.Seek(input, inputLatency, s.timeFactor)
	if err != nil {
		return nil, fmt.Errorf("stretch: seek failed: %w", err)
	}

	input.SetOffset(inputLatency)

	err = s.engine.Process(input, inputLength, output, outputLength)
	if err != nil {
		return nil, fmt.Errorf("stretch: process failed: %w", err)
	}

	output.SetOffset(outputLength)

	err = s.engine.Flush(output, tail)
	if err != nil {
		return nil, fmt.Errorf("stretch: flush failed: %w", err)
	}

	// The first tail samples are the engine's lead-in; the exact window
	// starts where the output aligns with the real input.
	if s.exactLength {
		return output.CopyWindow(tail, outputLength), nil
	}

	return output.CopyWindow(0, outputLength+tail), nil
}

type offsetReader interface {
	Offset() int
}

// logicalLength returns how many logical samples in holds from its cursor.
func logicalLength(in buffer.Reader) (int, error) {
	o, ok := in.(offsetReader)
	if !ok {
		return in.Len(), nil
	}

	off := o.Offset()
	if off < 0 || off > in.Len() {
		return 0, fmt.Errorf("%w: offset %d, length %d", ErrInvalidOffset, off, in.Len())
	}

	return in.Len() - off, nil
}

func copyInput(dst *buffer.Buffer, src buffer.Reader, n int) {
	if b, ok := src.(*buffer.Buffer); ok {
		off := b.Offset()
		for c := range dst.NumChannels() {
			copy(dst.Channel(c)[:n], b.Channel(c)[off:off+n])
		}

		return
	}

	for c := range dst.NumChannels() {
		ch := dst.Channel(c)
		for i := range n {
			ch[i] = src.At(c, i)
		}
	}
}

func checkChannels(channels int) error {
	if channels != 1 && channels != 2 {
		return fmt.Errorf("%w: got %d channels, want (1, samples) or (2, samples)",
			ErrUnsupportedChannelLayout, channels)
	}

	return nil
}
