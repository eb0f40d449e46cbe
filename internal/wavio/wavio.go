// Package wavio converts between PCM WAV files and planar float64 channels
// in [-1, 1].
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	// ErrInvalidFile is returned when the input is not a readable WAV file.
	ErrInvalidFile = errors.New("wavio: invalid WAV file")

	// ErrUnsupportedBitDepth is returned for bit depths other than 16, 24
	// and 32.
	ErrUnsupportedBitDepth = errors.New("wavio: unsupported bit depth")

	// ErrUnsupportedFormat is returned for sample encodings other than
	// integer PCM and 32-bit IEEE float.
	ErrUnsupportedFormat = errors.New("wavio: unsupported sample format")
)

const (
	formatPCM   = 1
	formatFloat = 3
)

// Audio is decoded planar PCM.
type Audio struct {
	Channels   [][]float64
	SampleRate int
	BitDepth   int
}

// Frames returns the per-channel sample count.
func (a *Audio) Frames() int {
	if len(a.Channels) == 0 {
		return 0
	}

	return len(a.Channels[0])
}

// Decode reads a whole WAV stream. Integer PCM and 32-bit float data are
// accepted.
func Decode(r io.ReadSeeker) (*Audio, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidFile
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: failed to read PCM data: %w", err)
	}

	bitDepth := int(decoder.BitDepth)

	err = checkBitDepth(bitDepth)
	if err != nil {
		return nil, err
	}

	format := decoder.WavAudioFormat

	switch {
	case format == formatPCM:
	case format == formatFloat && bitDepth == 32:
	default:
		return nil, fmt.Errorf("%w: format tag %d with %d bits", ErrUnsupportedFormat, format, bitDepth)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidFile, channels)
	}

	frames := len(buf.Data) / channels
	scale := fullScale(bitDepth)

	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, frames)
	}

	for i := range frames {
		for c := range channels {
			x := buf.Data[i*channels+c]
			if format == formatFloat {
				// The decoder hands back the raw sample bits as a signed int32.
				out[c][i] = float64(math.Float32frombits(uint32(int32(x))))
			} else {
				out[c][i] = float64(x) / scale
			}
		}
	}

	return &Audio{Channels: out, SampleRate: buf.Format.SampleRate, BitDepth: bitDepth}, nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a, nil
}

// Encode writes channels as integer PCM. Samples are clipped to [-1, 1].
func Encode(w io.WriteSeeker, channels [][]float64, sampleRate, bitDepth int) error {
	err := checkBitDepth(bitDepth)
	if err != nil {
		return err
	}

	if len(channels) == 0 {
		return fmt.Errorf("%w: no channels to write", ErrInvalidFile)
	}

	frames := len(channels[0])
	for c, ch := range channels {
		if len(ch) != frames {
			return fmt.Errorf("wavio: channel %d has %d samples, channel 0 has %d", c, len(ch), frames)
		}
	}

	numChannels := len(channels)
	peak := fullScale(bitDepth) - 1

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, frames*numChannels),
		SourceBitDepth: bitDepth,
	}

	for i := range frames {
		for c := range numChannels {
			x := max(-1, min(1, channels[c][i]))
			buf.Data[i*numChannels+c] = int(math.Round(x * peak))
		}
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, numChannels, 1)

	err = enc.Write(buf)
	if err != nil {
		return fmt.Errorf("wavio: failed to write PCM data: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("wavio: failed to finalise WAV header: %w", err)
	}

	return nil
}

// WriteFile encodes channels to a new file at path.
func WriteFile(path string, channels [][]float64, sampleRate, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	err = Encode(f, channels, sampleRate, bitDepth)
	if err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func checkBitDepth(bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

func fullScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}
