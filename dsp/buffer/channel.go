package buffer

// Channel is an offset-relative view of a single channel. The zero value is
// an empty view.
type Channel struct {
	samples []float64
	offset  int
}

// At returns the sample at logical index i.
func (c Channel) At(i int) float64 {
	return c.samples[i+c.offset]
}

// Set stores v at logical index i.
func (c Channel) Set(i int, v float64) {
	c.samples[i+c.offset] = v
}

// Ref returns a pointer into the underlying storage at logical index i.
func (c Channel) Ref(i int) *float64 {
	return &c.samples[i+c.offset]
}

// Len returns the number of logical indices reachable from the offset.
func (c Channel) Len() int {
	return max(len(c.samples)-c.offset, 0)
}

// Offset returns the physical index of logical index 0.
func (c Channel) Offset() int {
	return c.offset
}
