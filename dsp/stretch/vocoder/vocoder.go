package vocoder

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-stretch/dsp/buffer"
	"github.com/cwbudde/algo-stretch/dsp/core"
	"github.com/cwbudde/algo-stretch/dsp/stretch"
	"github.com/cwbudde/algo-stretch/dsp/window"
)

const (
	defaultBlockSeconds    = 0.12
	defaultIntervalSeconds = 0.03
	cheaperBlockSeconds    = 0.1
	cheaperIntervalSeconds = 0.04

	// MinBlockSamples is the smallest block Configure accepts.
	MinBlockSamples = 16

	// Output samples whose accumulated window power falls below this
	// fraction of the steady-state power are attenuated rather than
	// normalised. This only affects the first samples after a reset.
	normFloorRatio = 0.1
)

// ErrChannelMismatch is returned when a buffer has fewer channels than the
// vocoder is configured for.
var ErrChannelMismatch = errors.New("vocoder: buffer channel count does not match configuration")

var _ stretch.Engine = (*Vocoder)(nil)

// Vocoder is a block-based phase-vocoder time stretcher and pitch shifter.
type Vocoder struct {
	channels int
	block    int
	interval int
	fftSize  int
	bins     int

	windowType window.Type
	window     []float64
	omega      []float64
	normFloor  float64

	plan *algofft.Plan[complex128]

	multiplier    float64
	tonalityLimit float64
	freqMap       stretch.FreqMap

	chans []*channelState

	// Overlap-add output ring, one channel per input channel, and the
	// window power accumulated per slot.
	ring    *buffer.Buffer
	norm    []float64
	readPos int

	stepCounter    int
	sinceFrame     int
	fresh          bool
	inputPerOutput float64

	// Work buffers (allocated once in rebuildState).
	frame     []float64
	spectrum  []complex128
	synth     []complex128
	timeFrame []complex128
	re        []float64
	im        []float64
	mag       []float64
	phase     []float64
	freq      []float64
	pos       []float64
	outMag    []float64
	outFreq   []float64
	srcBin    []int
	scratch   []float64
}

type channelState struct {
	history   []float64
	prevPhase []float64
	sumPhase  []float64
}

// New creates a Vocoder. Without explicit block and interval sizes the
// default preset for the configured sample rate is applied; with only a
// block size the interval defaults to a quarter block.
func New(opts ...core.ProcessorOption) (*Vocoder, error) {
	cfg := core.ApplyProcessorOptions(opts...)

	v := &Vocoder{
		windowType:     window.TypeHann,
		multiplier:     1,
		inputPerOutput: 1,
	}

	var err error

	switch {
	case cfg.BlockSize > 0:
		interval := cfg.IntervalSize
		if interval == 0 {
			interval = max(cfg.BlockSize/4, 1)
		}

		err = v.Configure(cfg.Channels, cfg.BlockSize, interval)
	case cfg.IntervalSize > 0:
		err = v.Configure(cfg.Channels, secondsToSamples(defaultBlockSeconds, cfg.SampleRate), cfg.IntervalSize)
	default:
		err = v.PresetDefault(cfg.Channels, cfg.SampleRate)
	}

	if err != nil {
		return nil, err
	}

	return v, nil
}

// Channels returns the configured channel count.
func (v *Vocoder) Channels() int { return v.channels }

// BlockSamples returns the analysis block length.
func (v *Vocoder) BlockSamples() int { return v.block }

// IntervalSamples returns the synthesis hop.
func (v *Vocoder) IntervalSamples() int { return v.interval }

// FFTSize returns the zero-padded transform length.
func (v *Vocoder) FFTSize() int { return v.fftSize }

// InputLatency returns how far input must run ahead of the output position.
func (v *Vocoder) InputLatency() int { return v.block / 2 }

// OutputLatency returns how many samples of output are still owed when
// input ends.
func (v *Vocoder) OutputLatency() int { return v.block - v.InputLatency() }

// WindowType returns the analysis/synthesis window shape.
func (v *Vocoder) WindowType() window.Type { return v.windowType }

// TransposeFactor returns the current pitch multiplier.
func (v *Vocoder) TransposeFactor() float64 { return v.multiplier }

// PresetDefault configures 120 ms blocks with a 30 ms interval.
func (v *Vocoder) PresetDefault(channels int, sampleRate float64) error {
	return v.preset(channels, sampleRate, defaultBlockSeconds, defaultIntervalSeconds)
}

// PresetCheaper configures 100 ms blocks with a 40 ms interval.
func (v *Vocoder) PresetCheaper(channels int, sampleRate float64) error {
	return v.preset(channels, sampleRate, cheaperBlockSeconds, cheaperIntervalSeconds)
}

func (v *Vocoder) preset(channels int, sampleRate, blockSeconds, intervalSeconds float64) error {
	if !core.IsFinitePositive(sampleRate) {
		return fmt.Errorf("%w: sample rate must be positive and finite: %f",
			stretch.ErrInvalidConfiguration, sampleRate)
	}

	return v.Configure(channels,
		secondsToSamples(blockSeconds, sampleRate),
		secondsToSamples(intervalSeconds, sampleRate))
}

// Configure sets the channel count, block length and interval. The
// vocoder is reset.
func (v *Vocoder) Configure(channels, blockSamples, intervalSamples int) error {
	if channels < 1 {
		return fmt.Errorf("%w: channels must be >= 1: %d", stretch.ErrInvalidConfiguration, channels)
	}

	if blockSamples < MinBlockSamples {
		return fmt.Errorf("%w: block must be >= %d samples: %d",
			stretch.ErrInvalidConfiguration, MinBlockSamples, blockSamples)
	}

	if intervalSamples < 1 || intervalSamples > blockSamples {
		return fmt.Errorf("%w: interval must be in [1, %d]: %d",
			stretch.ErrInvalidConfiguration, blockSamples, intervalSamples)
	}

	fftSize := nextPowerOfTwo(blockSamples)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return fmt.Errorf("vocoder: failed to create FFT plan: %w", err)
	}

	v.channels = channels
	v.block = blockSamples
	v.interval = intervalSamples
	v.fftSize = fftSize
	v.plan = plan

	v.rebuildState()
	v.Reset()

	return nil
}

// SetWindow changes the window shape. The vocoder is reset.
func (v *Vocoder) SetWindow(t window.Type) {
	v.windowType = t
	if v.block > 0 {
		v.rebuildState()
		v.Reset()
	}
}

// SetTransposeFactor sets the pitch multiplier. Above tonalityLimit
// (normalised frequency, 0 disables) frequencies are shifted by a constant
// instead of scaled. Non-positive or non-finite multipliers are ignored.
// Any custom frequency map is cleared.
func (v *Vocoder) SetTransposeFactor(multiplier, tonalityLimit float64) {
	if !core.IsFinitePositive(multiplier) {
		return
	}

	v.multiplier = multiplier
	v.tonalityLimit = max(tonalityLimit, 0)
	v.freqMap = nil
}

// SetTransposeSemitones sets the pitch shift in semitones.
func (v *Vocoder) SetTransposeSemitones(semitones, tonalityLimit float64) {
	v.SetTransposeFactor(math.Pow(2, semitones/12), tonalityLimit)
}

// SetFreqMap installs a custom input-to-output frequency mapping in
// normalised frequency. The mapping should be non-decreasing. A nil map
// restores the transpose factor.
func (v *Vocoder) SetFreqMap(m stretch.FreqMap) {
	v.freqMap = m
}

// Reset clears the input history, phase state and pending output.
func (v *Vocoder) Reset() {
	for _, st := range v.chans {
		clear(st.history)
		clear(st.prevPhase)
		clear(st.sumPhase)
	}

	if v.ring != nil {
		v.ring.Zero()
	}

	clear(v.norm)
	v.readPos = 0
	v.stepCounter = 0
	v.sinceFrame = 0
	v.fresh = true
	v.inputPerOutput = 1
}

func (v *Vocoder) rebuildState() {
	v.window = window.Generate(v.windowType, v.block, window.WithPeriodic())
	v.normFloor = normFloorRatio * window.PowerSum(v.window) / float64(v.interval)
	v.bins = v.fftSize/2 + 1

	v.omega = make([]float64, v.bins)
	for k := range v.bins {
		v.omega[k] = 2 * math.Pi * float64(k) / float64(v.fftSize)
	}

	v.chans = make([]*channelState, v.channels)
	for c := range v.chans {
		v.chans[c] = &channelState{
			history:   make([]float64, v.block),
			prevPhase: make([]float64, v.bins),
			sumPhase:  make([]float64, v.bins),
		}
	}

	v.ring = buffer.New(v.channels, v.block)

	v.norm = make([]float64, v.block)
	v.frame = make([]float64, v.block)
	v.scratch = make([]float64, v.block)
	v.spectrum = make([]complex128, v.fftSize)
	v.synth = make([]complex128, v.fftSize)
	v.timeFrame = make([]complex128, v.fftSize)
	v.re = make([]float64, v.bins)
	v.im = make([]float64, v.bins)
	v.mag = make([]float64, v.bins)
	v.phase = make([]float64, v.bins)
	v.freq = make([]float64, v.bins)
	v.pos = make([]float64, v.bins)
	v.outMag = make([]float64, v.bins)
	v.outFreq = make([]float64, v.bins)
	v.srcBin = make([]int, v.bins)
}

func secondsToSamples(seconds, sampleRate float64) int {
	return int(math.Round(seconds * sampleRate))
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
