// Package testutil holds signal generators and assertions shared by the
// stretch tests.
package testutil

import (
	"math"
	"math/rand"
)

// Sine returns length samples of amplitude*sin(2*pi*freqHz*n/sampleRate).
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// Noise returns uniform white noise in [-amplitude, amplitude) from a fixed
// seed.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse returns a unit impulse at pos. Out-of-range positions give
// silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// Silence returns a channels x length block of zeros.
func Silence(channels, length int) [][]float64 {
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, length)
	}

	return out
}

// Mono wraps one channel as a (1, samples) block.
func Mono(samples []float64) [][]float64 {
	return [][]float64{samples}
}

// Stereo pairs left and right as a (2, samples) block.
func Stereo(left, right []float64) [][]float64 {
	return [][]float64{left, right}
}
