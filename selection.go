package bytestats

import (
	"fmt"
	"math"
)

// MinBandGap is the smallest distance kept between the two selection bands.
const MinBandGap = 0.01

// Range is a half-open byte interval [Start, End) of a buffer.
type Range struct {
	Start, End int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Slice returns the bytes of buf covered by r, trimmed to len(buf).
func (r Range) Slice(buf []byte) []byte {
	end := min(r.End, len(buf))
	start := min(r.Start, end)
	return buf[start:end]
}

// SelectRange converts fractional positions in [0, 1] into byte offsets of a
// buffer of the given size. Positions outside [0, 1] are clamped; start must
// stay below end.
func SelectRange(size int, start, end float64) (Range, error) {
	if size < 0 || math.IsNaN(start) || math.IsNaN(end) {
		return Range{}, fmt.Errorf("%w: selection %v..%v of %d bytes", ErrInvalidArgument, start, end, size)
	}
	start = clamp01(start)
	end = clamp01(end)
	if start >= end {
		return Range{}, fmt.Errorf("%w: selection start %v not before end %v", ErrInvalidArgument, start, end)
	}
	return Range{
		Start: int(start * float64(size)),
		End:   int(end * float64(size)),
	}, nil
}

// Selection is a pair of horizontal bands over the overview, given as
// fractions of its height. Upper < Lower always holds.
type Selection struct {
	Upper, Lower float64
}

// FullSelection selects the whole buffer.
func FullSelection() Selection {
	return Selection{Upper: 0, Lower: 1}
}

// MoveUpper drags the upper band to pos.
func (s Selection) MoveUpper(pos float64) Selection {
	return s.settle(pos, s.Lower)
}

// MoveLower drags the lower band to pos.
func (s Selection) MoveLower(pos float64) Selection {
	return s.settle(s.Upper, pos)
}

// Shift moves both bands by delta.
func (s Selection) Shift(delta float64) Selection {
	return s.settle(s.Upper+delta, s.Lower+delta)
}

// Range returns the byte range selected in a buffer of the given size.
func (s Selection) Range(size int) (Range, error) {
	return SelectRange(size, s.Upper, s.Lower)
}

// settle clamps the proposed band positions against the current ones.
func (s Selection) settle(upper, lower float64) Selection {
	if upper >= s.Lower-MinBandGap {
		upper = s.Lower - MinBandGap
	}
	if upper < 0 {
		upper = 0
	}
	if lower <= s.Upper+MinBandGap {
		lower = s.Upper + MinBandGap
	}
	if lower > 1 {
		lower = 1
	}
	return Selection{Upper: upper, Lower: lower}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
