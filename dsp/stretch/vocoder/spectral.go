package vocoder

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-stretch/dsp/core"
	"github.com/cwbudde/algo-stretch/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// analyse windows the channel history, transforms it and measures each
// bin's instantaneous frequency over the last hop input samples.
func (v *Vocoder) analyse(st *channelState, hop float64) error {
	err := window.ApplyCoefficients(v.frame, st.history, v.window)
	if err != nil {
		return fmt.Errorf("vocoder: windowing failed: %w", err)
	}

	for j, x := range v.frame {
		v.spectrum[j] = complex(x, 0)
	}

	clear(v.spectrum[v.block:])

	err = v.plan.Forward(v.spectrum, v.spectrum)
	if err != nil {
		return fmt.Errorf("vocoder: forward FFT failed: %w", err)
	}

	for k := range v.bins {
		v.re[k] = real(v.spectrum[k])
		v.im[k] = imag(v.spectrum[k])
	}

	vecmath.Magnitude(v.mag, v.re, v.im)

	for k := range v.bins {
		phase := math.Atan2(v.im[k], v.re[k])
		v.phase[k] = phase

		if v.fresh || hop <= 0 {
			v.freq[k] = v.omega[k]
		} else {
			delta := wrapPhase(phase - st.prevPhase[k] - v.omega[k]*hop)
			v.freq[k] = v.omega[k] + delta/hop
		}

		st.prevPhase[k] = phase
	}

	return nil
}

func (v *Vocoder) identityMap() bool {
	return v.freqMap == nil && core.NearlyEqual(v.multiplier, 1, 0)
}

// mapFreq maps a normalised input frequency to its output frequency.
func (v *Vocoder) mapFreq(f float64) float64 {
	if v.freqMap != nil {
		return v.freqMap(f)
	}

	if v.tonalityLimit > 0 && f > v.tonalityLimit {
		return f + (v.multiplier-1)*v.tonalityLimit
	}

	return f * v.multiplier
}

// mapSpectrum fills outMag, outFreq and srcBin. Each output bin reads the
// input spectrum at the fractional position that maps onto it.
func (v *Vocoder) mapSpectrum() {
	if v.identityMap() {
		copy(v.outMag, v.mag)
		copy(v.outFreq, v.freq)

		for k := range v.srcBin {
			v.srcBin[k] = k
		}

		return
	}

	size := float64(v.fftSize)
	last := v.bins - 1

	for k := range v.bins {
		v.pos[k] = v.mapFreq(float64(k)/size) * size
	}

	src := 0

	for j := range v.bins {
		target := float64(j)
		for src < last-1 && v.pos[src+1] < target {
			src++
		}

		lo, hi := v.pos[src], v.pos[src+1]
		if !(target >= lo && target <= hi) || hi <= lo {
			v.outMag[j] = 0
			v.outFreq[j] = v.omega[j]
			v.srcBin[j] = j

			continue
		}

		frac := (target - lo) / (hi - lo)
		v.outMag[j] = v.mag[src]*(1-frac) + v.mag[src+1]*frac

		inst := v.freq[src]*(1-frac) + v.freq[src+1]*frac
		v.outFreq[j] = v.mapFreq(inst/(2*math.Pi)) * 2 * math.Pi

		v.srcBin[j] = src
		if frac >= 0.5 {
			v.srcBin[j] = src + 1
		}
	}
}

// synthesise advances the synthesis phases, inverts the mapped spectrum
// and overlap-adds the windowed frame into ring channel c.
func (v *Vocoder) synthesise(c int, st *channelState) error {
	hop := float64(v.interval)

	for k := range v.bins {
		if v.fresh {
			st.sumPhase[k] = v.phase[v.srcBin[k]]
		} else {
			st.sumPhase[k] = wrapPhase(st.sumPhase[k] + v.outFreq[k]*hop)
		}

		v.synth[k] = cmplx.Rect(v.outMag[k], st.sumPhase[k])
	}

	half := v.bins - 1
	v.synth[0] = complex(real(v.synth[0]), 0)
	v.synth[half] = complex(real(v.synth[half]), 0)

	for k := 1; k < half; k++ {
		v.synth[v.fftSize-k] = cmplx.Conj(v.synth[k])
	}

	err := v.plan.Inverse(v.timeFrame, v.synth)
	if err != nil {
		return fmt.Errorf("vocoder: inverse FFT failed: %w", err)
	}

	for j, w := range v.window {
		idx := v.readPos + j
		if idx >= v.block {
			idx -= v.block
		}

		v.ring.Add(c, idx, real(v.timeFrame[j])*w)
	}

	return nil
}

func wrapPhase(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	return x - math.Pi
}
