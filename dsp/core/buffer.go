package core

// EnsureLen returns a slice with the requested length, reusing buf capacity
// if possible. Reused elements keep their previous values.
func EnsureLen[T any](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// ShiftIn appends src to the end of the fixed-length history hist, dropping
// the oldest samples. Only the last len(hist) samples of src are kept.
func ShiftIn(hist, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}
	if n >= len(hist) {
		copy(hist, src[n-len(hist):])
		return
	}
	copy(hist, hist[n:])
	copy(hist[len(hist)-n:], src)
}

// ShiftInZeros advances the history by n silent samples.
func ShiftInZeros(hist []float64, n int) {
	if n <= 0 {
		return
	}
	if n >= len(hist) {
		clear(hist)
		return
	}
	copy(hist, hist[n:])
	clear(hist[len(hist)-n:])
}
