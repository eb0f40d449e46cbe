package buffer

import (
	"errors"
	"fmt"
)

// ErrRaggedChannels is returned when channel slices differ in length.
var ErrRaggedChannels = errors.New("buffer: channels must have equal length")

// Reader is read-only, offset-relative access to multichannel samples.
type Reader interface {
	NumChannels() int
	Len() int
	At(channel, index int) float64
}

// Writer is a Reader that can also store samples.
type Writer interface {
	Reader
	Set(channel, index int, v float64)
}

// Buffer holds numChannels equal-length channels in a single allocation.
// Channel c occupies samples[c*length : (c+1)*length].
type Buffer struct {
	samples  []float64
	channels [][]float64
	length   int
	offset   int
}

// New returns a zero-filled Buffer. Negative sizes are treated as 0.
func New(channels, length int) *Buffer {
	b := &Buffer{}
	b.Resize(channels, length)

	return b
}

// FromChannels copies per-channel slices into a new Buffer.
// All slices must share the same length.
func FromChannels(chans [][]float64) (*Buffer, error) {
	length := 0
	if len(chans) > 0 {
		length = len(chans[0])
	}

	for c, ch := range chans {
		if len(ch) != length {
			return nil, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrRaggedChannels, c, len(ch), length)
		}
	}

	b := New(len(chans), length)
	for c, ch := range chans {
		copy(b.channels[c], ch)
	}

	return b, nil
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.channels)
}

// Len returns the physical per-channel length. It is not adjusted for the
// offset.
func (b *Buffer) Len() int {
	return b.length
}

// Offset returns the current cursor offset.
func (b *Buffer) Offset() int {
	return b.offset
}

// SetOffset moves the logical origin of every channel to physical index k.
func (b *Buffer) SetOffset(k int) {
	b.offset = k
}

// ResetOffset moves the logical origin back to physical index 0.
func (b *Buffer) ResetOffset() {
	b.offset = 0
}

// At returns the sample at logical index i of channel c.
func (b *Buffer) At(c, i int) float64 {
	return b.channels[c][i+b.offset]
}

// Set stores v at logical index i of channel c.
func (b *Buffer) Set(c, i int, v float64) {
	b.channels[c][i+b.offset] = v
}

// Add accumulates v into logical index i of channel c.
func (b *Buffer) Add(c, i int, v float64) {
	b.channels[c][i+b.offset] += v
}

// Ref returns a pointer to logical index i of channel c. Writes through the
// pointer land directly in the buffer's storage.
func (b *Buffer) Ref(c, i int) *float64 {
	return &b.channels[c][i+b.offset]
}

// Channel returns the physical span of channel c, ignoring the offset.
// The slice aliases the buffer's storage.
func (b *Buffer) Channel(c int) []float64 {
	return b.channels[c]
}

// View returns a single-channel view bound to the current offset.
// Later SetOffset calls do not move an existing view.
func (b *Buffer) View(c int) Channel {
	return Channel{samples: b.channels[c], offset: b.offset}
}

// Resize sets the shape to channels x length, reusing capacity when
// possible. All samples are zeroed and the offset is reset.
func (b *Buffer) Resize(channels, length int) {
	if channels < 0 {
		channels = 0
	}

	if length < 0 {
		length = 0
	}

	n := channels * length
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		b.samples = make([]float64, n)
	}

	if cap(b.channels) >= channels {
		b.channels = b.channels[:channels]
	} else {
		b.channels = make([][]float64, channels)
	}

	// Clip each channel's capacity so an overrun panics instead of
	// spilling into the next channel.
	for c := range b.channels {
		start := c * length
		b.channels[c] = b.samples[start : start+length : start+length]
	}

	b.length = length
	b.offset = 0
	b.Zero()
}

// Zero sets every sample of every channel to 0.
func (b *Buffer) Zero() {
	clear(b.samples)
}

// CopyWindow returns a new Buffer holding physical samples [start, start+n)
// of every channel. The window is clamped to the channel bounds.
func (b *Buffer) CopyWindow(start, n int) *Buffer {
	start = max(start, 0)
	end := min(start+max(n, 0), b.length)
	out := New(b.NumChannels(), max(end-start, 0))

	for c := range b.channels {
		if end > start {
			copy(out.channels[c], b.channels[c][start:end])
		}
	}

	return out
}

// ToChannels returns a deep copy of every physical channel. The caller owns
// the returned slices.
func (b *Buffer) ToChannels() [][]float64 {
	out := make([][]float64, b.NumChannels())
	for c, ch := range b.channels {
		out[c] = append([]float64(nil), ch...)
		if out[c] == nil {
			out[c] = []float64{}
		}
	}

	return out
}
