package bytestats

import (
	"errors"
	"math"
	"testing"
)

func TestSelectRange(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		start, end float64
		want       Range
	}{
		{"whole", 1000, 0, 1, Range{0, 1000}},
		{"middle", 1000, 0.25, 0.5, Range{250, 500}},
		{"clamped low", 1000, -3, 0.1, Range{0, 100}},
		{"clamped high", 1000, 0.9, 7, Range{900, 1000}},
		{"empty buffer", 0, 0, 1, Range{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectRange(tt.size, tt.start, tt.end)
			if err != nil {
				t.Fatalf("SelectRange() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SelectRange() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSelectRange_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		start, end float64
	}{
		{"reversed", 10, 0.6, 0.4},
		{"equal", 10, 0.5, 0.5},
		{"both clamp to one", 10, 2, 3},
		{"nan", 10, math.NaN(), 1},
		{"negative size", -1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SelectRange(tt.size, tt.start, tt.end); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("SelectRange() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestRange_Slice(t *testing.T) {
	buf := []byte{0, 1, 2, 3, 4, 5}
	if got := (Range{2, 4}).Slice(buf); string(got) != "\x02\x03" {
		t.Errorf("Slice() = %v", got)
	}
	if got := (Range{4, 99}).Slice(buf); len(got) != 2 {
		t.Errorf("Slice() past end len = %d, want 2", len(got))
	}
	if got := (Range{9, 12}).Slice(buf); len(got) != 0 {
		t.Errorf("Slice() outside len = %d, want 0", len(got))
	}
}

func TestSelection_Bands(t *testing.T) {
	s := FullSelection()

	s = s.MoveUpper(0.3)
	if s.Upper != 0.3 || s.Lower != 1 {
		t.Errorf("MoveUpper(0.3) = %+v", s)
	}

	s = s.MoveLower(0.2)
	if got, want := s.Lower, 0.3+MinBandGap; math.Abs(got-want) > 1e-12 {
		t.Errorf("MoveLower past upper = %v, want %v", got, want)
	}

	s = FullSelection().MoveUpper(1)
	if got, want := s.Upper, 1-MinBandGap; math.Abs(got-want) > 1e-12 {
		t.Errorf("MoveUpper(1) = %v, want %v", got, want)
	}

	s = Selection{Upper: 0.1, Lower: 0.4}.Shift(-0.5)
	if s.Upper != 0 {
		t.Errorf("Shift clamps upper to 0, got %v", s.Upper)
	}

	r, err := Selection{Upper: 0.5, Lower: 1}.Range(200)
	if err != nil || r != (Range{100, 200}) {
		t.Errorf("Range() = %+v, %v", r, err)
	}
}
