package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestEnsureLenComplex(t *testing.T) {
	out := EnsureLen[complex128](nil, 3)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}

	if got := EnsureLen(out, 0); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestShiftIn(t *testing.T) {
	tests := []struct {
		name string
		src  []float64
		want []float64
	}{
		{name: "empty", src: nil, want: []float64{1, 2, 3, 4}},
		{name: "partial", src: []float64{5, 6}, want: []float64{3, 4, 5, 6}},
		{name: "exact", src: []float64{5, 6, 7, 8}, want: []float64{5, 6, 7, 8}},
		{name: "longer", src: []float64{5, 6, 7, 8, 9}, want: []float64{6, 7, 8, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hist := []float64{1, 2, 3, 4}
			ShiftIn(hist, tt.src)

			for i := range hist {
				if hist[i] != tt.want[i] {
					t.Fatalf("hist = %v, want %v", hist, tt.want)
				}
			}
		})
	}
}

func TestShiftInZeros(t *testing.T) {
	hist := []float64{1, 2, 3, 4}
	ShiftInZeros(hist, 1)

	want := []float64{2, 3, 4, 0}
	for i := range hist {
		if hist[i] != want[i] {
			t.Fatalf("hist = %v, want %v", hist, want)
		}
	}

	ShiftInZeros(hist, 10)
	for i, v := range hist {
		if v != 0 {
			t.Fatalf("hist[%d] = %v, want 0", i, v)
		}
	}
}
