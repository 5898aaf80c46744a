package bytestats

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Dtype describes how consecutive bytes are reinterpreted as samples for
// histogram binning. Multi-byte samples are little-endian.
type Dtype uint8

const (
	// DtypeNone is the zero value and is rejected by every histogram.
	DtypeNone Dtype = iota

	// DtypeU8 is one unsigned byte per sample.
	DtypeU8

	// DtypeU12 is a 16-bit word with only the low 12 bits significant.
	DtypeU12

	// DtypeU16 is an unsigned 16-bit sample.
	DtypeU16

	// DtypeU32 is an unsigned 32-bit sample.
	DtypeU32

	// DtypeU64 is an unsigned 64-bit sample.
	DtypeU64

	// DtypeF32 is an IEEE-754 single precision sample.
	DtypeF32

	// DtypeF64 is an IEEE-754 double precision sample.
	DtypeF64

	// dtypeCount is the number of dtypes (for internal use).
	dtypeCount
)

// NonFiniteBucket is the bucket that receives NaN and ±Inf float samples.
// Finite float samples never land in it.
const NonFiniteBucket = 255

// DtypeInfo contains metadata about a dtype.
type DtypeInfo struct {
	// Name is the case-sensitive name accepted by ParseDtype.
	Name string

	// Width is the number of bytes consumed per sample.
	Width int

	// Mask selects the significant bits of an integer sample.
	Mask uint64

	// Shift reduces the masked integer sample to 8 bits.
	Shift uint

	// Float marks IEEE-754 dtypes, which ignore Mask and Shift.
	Float bool
}

// dtypeInfoTable contains metadata for each dtype.
var dtypeInfoTable = [dtypeCount]DtypeInfo{
	DtypeNone: {Name: "NONE"},
	DtypeU8:   {Name: "U8", Width: 1, Mask: 0xFF, Shift: 0},
	DtypeU12:  {Name: "U12", Width: 2, Mask: 0x0FFF, Shift: 4},
	DtypeU16:  {Name: "U16", Width: 2, Mask: 0xFFFF, Shift: 8},
	DtypeU32:  {Name: "U32", Width: 4, Mask: math.MaxUint32, Shift: 24},
	DtypeU64:  {Name: "U64", Width: 8, Mask: math.MaxUint64, Shift: 56},
	DtypeF32:  {Name: "F32", Width: 4, Float: true},
	DtypeF64:  {Name: "F64", Width: 8, Float: true},
}

// Info returns metadata about the dtype.
// Unknown dtypes report the DtypeNone entry.
func (d Dtype) Info() DtypeInfo {
	if !d.IsValid() {
		return dtypeInfoTable[DtypeNone]
	}
	return dtypeInfoTable[d]
}

// IsValid reports whether d names a real sample layout.
func (d Dtype) IsValid() bool {
	return d > DtypeNone && d < dtypeCount
}

// Width returns the sample width in bytes, or 0 for invalid dtypes.
func (d Dtype) Width() int {
	return d.Info().Width
}

// String returns the dtype name.
func (d Dtype) String() string {
	if d >= dtypeCount {
		return fmt.Sprintf("Dtype(%d)", uint8(d))
	}
	return dtypeInfoTable[d].Name
}

// ParseDtype looks up a dtype by its case-sensitive name ("U8", "U12", "U16",
// "U32", "U64", "F32", "F64"). Unmatched names yield DtypeNone.
func ParseDtype(name string) Dtype {
	for d := DtypeU8; d < dtypeCount; d++ {
		if dtypeInfoTable[d].Name == name {
			return d
		}
	}
	return DtypeNone
}

// Dtypes returns every valid dtype in declaration order.
func Dtypes() []Dtype {
	out := make([]Dtype, 0, dtypeCount-1)
	for d := DtypeU8; d < dtypeCount; d++ {
		out = append(out, d)
	}
	return out
}

// SampleCount returns how many whole samples of dt fit in n bytes.
// It returns 0 for invalid dtypes.
func SampleCount(n int, dt Dtype) int {
	w := dt.Width()
	if w == 0 || n <= 0 {
		return 0
	}
	return n / w
}

func checkDtype(dt Dtype) error {
	if !dt.IsValid() {
		return fmt.Errorf("%w: dtype %s", ErrInvalidArgument, dt)
	}
	return nil
}

// bucketer reduces the sample starting at b[0] to a bucket in [0, 255].
// The caller guarantees len(b) >= width.
type bucketer func(b []byte) uint8

// bucketFunc returns the reduction for a valid dtype.
func bucketFunc(dt Dtype) bucketer {
	info := dtypeInfoTable[dt]
	switch dt {
	case DtypeU8:
		return func(b []byte) uint8 { return b[0] }
	case DtypeU12, DtypeU16:
		return func(b []byte) uint8 {
			return uint8((uint64(binary.LittleEndian.Uint16(b)) & info.Mask) >> info.Shift)
		}
	case DtypeU32:
		return func(b []byte) uint8 {
			return uint8(binary.LittleEndian.Uint32(b) >> info.Shift)
		}
	case DtypeU64:
		return func(b []byte) uint8 {
			return uint8(binary.LittleEndian.Uint64(b) >> info.Shift)
		}
	case DtypeF32:
		return func(b []byte) uint8 {
			return float32Bucket(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		}
	case DtypeF64:
		return func(b []byte) uint8 {
			return float64Bucket(math.Float64frombits(binary.LittleEndian.Uint64(b)))
		}
	}
	return nil
}

// float32Bucket maps f onto an order-preserving key of its bit pattern and
// keeps the top byte. Finite values stay below NonFiniteBucket.
func float32Bucket(f float32) uint8 {
	if f != f || math.IsInf(float64(f), 0) {
		return NonFiniteBucket
	}
	if f == 0 {
		f = 0 // folds -0 onto +0
	}
	bits := math.Float32bits(f)
	if bits&(1<<31) != 0 {
		bits = ^bits
	} else {
		bits |= 1 << 31
	}
	return min(uint8(bits>>24), NonFiniteBucket-1)
}

// float64Bucket is float32Bucket for doubles.
func float64Bucket(f float64) uint8 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NonFiniteBucket
	}
	if f == 0 {
		f = 0
	}
	bits := math.Float64bits(f)
	if bits&(1<<63) != 0 {
		bits = ^bits
	} else {
		bits |= 1 << 63
	}
	return min(uint8(bits>>56), NonFiniteBucket-1)
}

// bucketize reduces every whole sample of buf to its bucket.
func bucketize(buf []byte, dt Dtype) []uint8 {
	w := dtypeInfoTable[dt].Width
	n := len(buf) / w
	if dt == DtypeU8 {
		return buf[:n]
	}
	out := make([]uint8, n)
	reduce := bucketFunc(dt)
	for i := range n {
		out[i] = reduce(buf[i*w:])
	}
	return out
}
