package wavio

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripStereo16(t *testing.T) {
	left := []float64{0, 0.5, -0.5, 1, -1, 0.25}
	right := []float64{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}

	path := filepath.Join(t.TempDir(), "stereo.wav")
	require.NoError(t, WriteFile(path, [][]float64{left, right}, 48000, 16))

	a, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 48000, a.SampleRate)
	assert.Equal(t, 16, a.BitDepth)
	require.Len(t, a.Channels, 2)
	assert.Equal(t, len(left), a.Frames())

	for i := range left {
		assert.InDelta(t, left[i], a.Channels[0][i], 1.0/32767)
		assert.InDelta(t, right[i], a.Channels[1][i], 1.0/32767)
	}
}

func TestRoundTrip24BitMono(t *testing.T) {
	samples := []float64{0, 0.123456, -0.654321}

	path := filepath.Join(t.TempDir(), "mono.wav")
	require.NoError(t, WriteFile(path, [][]float64{samples}, 44100, 24))

	a, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, a.Channels, 1)
	assert.Equal(t, 24, a.BitDepth)

	for i := range samples {
		assert.InDelta(t, samples[i], a.Channels[0][i], 1e-6)
	}
}

func TestEncodeClipsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, WriteFile(path, [][]float64{{2, -3}}, 8000, 16))

	a, err := ReadFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 32767.0/32768, a.Channels[0][0], 1e-12)
	assert.InDelta(t, -32767.0/32768, a.Channels[0][1], 1e-12)
}

func TestEncodeRejectsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")

	err := WriteFile(path, [][]float64{{0}}, 8000, 12)
	require.ErrorIs(t, err, ErrUnsupportedBitDepth)

	err = WriteFile(path, nil, 8000, 16)
	require.ErrorIs(t, err, ErrInvalidFile)

	err = WriteFile(path, [][]float64{{0, 1}, {0}}, 8000, 16)
	require.Error(t, err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not a RIFF file")))
	require.ErrorIs(t, err, ErrInvalidFile)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.wav"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// rawWAV builds a mono WAV stream by hand so format tags the encoder cannot
// produce can be exercised.
func rawWAV(t *testing.T, formatTag, bitDepth uint16, data []byte) *bytes.Reader {
	t.Helper()

	const sampleRate = 8000

	blockAlign := bitDepth / 8

	var b bytes.Buffer
	le := binary.LittleEndian

	b.WriteString("RIFF")
	require.NoError(t, binary.Write(&b, le, uint32(36+len(data))))
	b.WriteString("WAVEfmt ")
	for _, field := range []any{
		uint32(16), formatTag, uint16(1), uint32(sampleRate),
		uint32(sampleRate) * uint32(blockAlign), blockAlign, bitDepth,
	} {
		require.NoError(t, binary.Write(&b, le, field))
	}
	b.WriteString("data")
	require.NoError(t, binary.Write(&b, le, uint32(len(data))))
	b.Write(data)

	return bytes.NewReader(b.Bytes())
}

func TestDecodeFloat32(t *testing.T) {
	samples := []float32{0.5, -0.25, 0.1, 0}

	data := make([]byte, 0, 4*len(samples))
	for _, x := range samples {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(x))
	}

	a, err := Decode(rawWAV(t, formatFloat, 32, data))
	require.NoError(t, err)
	require.Len(t, a.Channels, 1)
	assert.Equal(t, 32, a.BitDepth)
	require.Equal(t, len(samples), a.Frames())

	for i, x := range samples {
		assert.InDelta(t, float64(x), a.Channels[0][i], 1e-7)
	}
}

func TestDecodeRejectsUnknownFormat(t *testing.T) {
	data := make([]byte, 8)

	_, err := Decode(rawWAV(t, 2, 16, data))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	// Float is only understood at 32 bits.
	_, err = Decode(rawWAV(t, formatFloat, 16, data))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
