package plane

import "testing"

func TestMirror(t *testing.T) {
	tests := []struct{ index, size, want int }{
		{0, 4, 0},
		{-1, 4, 0},
		{-2, 4, 1},
		{4, 4, 3},
		{5, 4, 2},
		{8, 4, 0},
		{-9, 4, 0},
		{3, 1, 0},
		{-3, 1, 0},
		{2, 0, 0},
	}

	for _, tt := range tests {
		if got := Mirror(tt.index, tt.size); got != tt.want {
			t.Errorf("Mirror(%d, %d) = %d, want %d", tt.index, tt.size, got, tt.want)
		}
	}
}

func TestClampWrap(t *testing.T) {
	if Clamp(-3, 5) != 0 || Clamp(7, 5) != 4 || Clamp(2, 5) != 2 {
		t.Error("Clamp")
	}

	if Wrap(-1, 5) != 4 || Wrap(5, 5) != 0 || Wrap(-11, 5) != 4 || Wrap(1, 0) != 0 {
		t.Error("Wrap")
	}
}

func TestExtendRow(t *testing.T) {
	row := []float32{1, 2, 3}

	tests := []struct {
		border Border
		want   []float32
	}{
		{BorderMirror, []float32{2, 1, 1, 2, 3, 3, 2}},
		{BorderClamp, []float32{1, 1, 1, 2, 3, 3, 3}},
		{BorderWrap, []float32{2, 3, 1, 2, 3, 1, 2}},
		{BorderConstant, []float32{9, 9, 1, 2, 3, 9, 9}},
	}

	for _, tt := range tests {
		dst := make([]float32, 7)
		ExtendRow(dst, row, 2, 2, tt.border, 9)

		for i := range dst {
			if dst[i] != tt.want[i] {
				t.Fatalf("%v: got %v, want %v", tt.border, dst, tt.want)
			}
		}
	}
}

func TestExtendRowWiderThanRow(t *testing.T) {
	dst := make([]float32, 6)
	ExtendRow(dst, []float32{4, 5}, 2, 2, BorderMirror, 0)

	want := []float32{5, 4, 4, 5, 5, 4}
	for i := range dst {
		if dst[i] != want[i] {
			t.Fatalf("got %v, want %v", dst, want)
		}
	}
}

func TestParseBorder(t *testing.T) {
	for _, b := range Borders() {
		got, err := ParseBorder(" " + b.String() + " ")
		if err != nil || got != b {
			t.Errorf("ParseBorder(%q) = %v, %v", b.String(), got, err)
		}
	}

	if _, err := ParseBorder("reflect101"); err == nil {
		t.Error("expected error for unknown border")
	}

	if s := Border(42).String(); s != "Border(42)" {
		t.Errorf("String() = %q", s)
	}
}
