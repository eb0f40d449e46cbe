package testutil

import (
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// DominantFrequencyHz returns the centre frequency of the strongest
// non-DC FFT bin of signal. The length of signal sets the resolution and
// must be one algo-fft can plan.
func DominantFrequencyHz(t *testing.T, signal []float64, sampleRate float64) float64 {
	t.Helper()

	if len(signal) == 0 {
		return 0
	}

	plan, err := algofft.NewPlan64(len(signal))
	if err != nil {
		t.Fatalf("failed to create FFT plan: %v", err)
	}

	in := make([]complex128, len(signal))
	out := make([]complex128, len(signal))

	for i, v := range signal {
		in[i] = complex(v, 0)
	}

	err = plan.Forward(out, in)
	if err != nil {
		t.Fatalf("forward FFT failed: %v", err)
	}

	maxBin := 1
	maxMag := 0.0

	for k := 1; k <= len(signal)/2; k++ {
		re := real(out[k])
		im := imag(out[k])

		mag := re*re + im*im
		if mag > maxMag {
			maxMag = mag
			maxBin = k
		}
	}

	return sampleRate * float64(maxBin) / float64(len(signal))
}
