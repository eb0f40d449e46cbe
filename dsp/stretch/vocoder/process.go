package vocoder

import (
	"fmt"

	"github.com/cwbudde/algo-stretch/dsp/buffer"
	"github.com/cwbudde/algo-stretch/dsp/core"
)

// Seek primes the input history with the last BlockSamples of the first
// inputSamples of in and discards pending output. The next frame
// re-synthesises with the analysed phases. timeFactor (output per input)
// is used by a Flush that follows without an intermediate Process.
func (v *Vocoder) Seek(in buffer.Reader, inputSamples int, timeFactor float64) error {
	err := v.checkChannels(in.NumChannels())
	if err != nil {
		return err
	}

	if v.ring != nil {
		v.ring.Zero()
	}

	clear(v.norm)
	v.readPos = 0

	v.pushInput(in, 0, max(inputSamples, 0))

	v.stepCounter = 0
	v.sinceFrame = 0
	v.fresh = true

	if core.IsFinitePositive(timeFactor) {
		v.inputPerOutput = 1 / timeFactor
	}

	return nil
}

// Process consumes inputSamples from in while writing outputSamples to out.
func (v *Vocoder) Process(in buffer.Reader, inputSamples int, out buffer.Writer, outputSamples int) error {
	err := v.checkChannels(in.NumChannels())
	if err != nil {
		return err
	}

	err = v.checkChannels(out.NumChannels())
	if err != nil {
		return err
	}

	inputSamples = max(inputSamples, 0)
	if outputSamples > 0 {
		v.inputPerOutput = float64(inputSamples) / float64(outputSamples)
	}

	consumed := 0

	for i := range max(outputSamples, 0) {
		if v.stepCounter == 0 {
			target := int(int64(i) * int64(inputSamples) / int64(outputSamples))
			if target > consumed {
				v.pushInput(in, consumed, target)
				consumed = target
			}

			err = v.step()
			if err != nil {
				return err
			}
		}

		v.advance(out, i)
	}

	if inputSamples > consumed {
		v.pushInput(in, consumed, inputSamples)
	}

	return nil
}

// Flush writes outputSamples of output while feeding silence at the rate
// of the last Process or Seek.
func (v *Vocoder) Flush(out buffer.Writer, outputSamples int) error {
	err := v.checkChannels(out.NumChannels())
	if err != nil {
		return err
	}

	consumed := 0

	for i := range max(outputSamples, 0) {
		if v.stepCounter == 0 {
			target := int(float64(i) * v.inputPerOutput)
			if target > consumed {
				v.pushSilence(target - consumed)
				consumed = target
			}

			err = v.step()
			if err != nil {
				return err
			}
		}

		v.advance(out, i)
	}

	return nil
}

// advance emits one normalised output sample per channel at position i and
// frees its ring slot.
func (v *Vocoder) advance(out buffer.Writer, i int) {
	rp := v.readPos

	norm := max(v.norm[rp], v.normFloor)
	for c := range v.chans {
		out.Set(c, i, core.FlushDenormals(v.ring.At(c, rp)/norm))
		v.ring.Set(c, rp, 0)
	}

	v.norm[rp] = 0

	v.readPos++
	if v.readPos == v.block {
		v.readPos = 0
	}

	v.stepCounter++
	if v.stepCounter == v.interval {
		v.stepCounter = 0
	}
}

// pushInput appends in[from:to] to every channel's history.
func (v *Vocoder) pushInput(in buffer.Reader, from, to int) {
	n := to - from
	if n <= 0 {
		return
	}

	v.sinceFrame += n

	// Only the newest block samples survive.
	if n > v.block {
		from = to - v.block
		n = v.block
	}

	src := core.EnsureLen(v.scratch, n)
	for c, st := range v.chans {
		for i := range src {
			src[i] = in.At(c, from+i)
		}

		core.ShiftIn(st.history, src)
	}
}

func (v *Vocoder) pushSilence(n int) {
	if n <= 0 {
		return
	}

	v.sinceFrame += n

	for _, st := range v.chans {
		core.ShiftInZeros(st.history, n)
	}
}

// step analyses the current history of every channel and overlap-adds one
// synthesis frame starting at the read position.
func (v *Vocoder) step() error {
	hop := float64(v.sinceFrame)
	v.sinceFrame = 0

	for c, st := range v.chans {
		err := v.analyse(st, hop)
		if err != nil {
			return err
		}

		v.mapSpectrum()

		err = v.synthesise(c, st)
		if err != nil {
			return err
		}
	}

	for j, w := range v.window {
		idx := v.readPos + j
		if idx >= v.block {
			idx -= v.block
		}

		v.norm[idx] += w * w
	}

	v.fresh = false

	return nil
}

func (v *Vocoder) checkChannels(channels int) error {
	if channels < v.channels {
		return fmt.Errorf("%w: got %d, want %d", ErrChannelMismatch, channels, v.channels)
	}

	return nil
}
