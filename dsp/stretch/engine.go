package stretch

import "github.com/cwbudde/algo-stretch/dsp/buffer"

// FreqMap maps an input frequency to an output frequency. Both are
// normalised to the sample rate (cycles per sample).
type FreqMap func(freq float64) float64

// Engine is a streaming block-based stretcher with input and output
// latency. Latency figures are only meaningful after configuration and
// change whenever the configuration does.
//
// Process consumes inputSamples from in and produces outputSamples into
// out; the ratio of the two sets the instantaneous stretch. Buffers are
// read and written through their cursor offset.
type Engine interface {
	BlockSamples() int
	IntervalSamples() int
	InputLatency() int
	OutputLatency() int

	// Reset clears internal history and phase state.
	Reset()

	PresetDefault(channels int, sampleRate float64) error
	PresetCheaper(channels int, sampleRate float64) error
	Configure(channels, blockSamples, intervalSamples int) error

	SetTransposeFactor(multiplier, tonalityLimit float64)
	SetTransposeSemitones(semitones, tonalityLimit float64)
	SetFreqMap(m FreqMap)

	// Seek primes the engine with inputSamples of lead-in so the next
	// Process starts from real content rather than silence.
	Seek(in buffer.Reader, inputSamples int, timeFactor float64) error
	Process(in buffer.Reader, inputSamples int, out buffer.Writer, outputSamples int) error
	// Flush drains pending output with no further input.
	Flush(out buffer.Writer, outputSamples int) error
}
