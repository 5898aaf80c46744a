package bytestats

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestDtype_Width(t *testing.T) {
	tests := []struct {
		dtype    Dtype
		expected int
	}{
		{DtypeNone, 0},
		{DtypeU8, 1},
		{DtypeU12, 2},
		{DtypeU16, 2},
		{DtypeU32, 4},
		{DtypeU64, 8},
		{DtypeF32, 4},
		{DtypeF64, 8},
		{Dtype(200), 0},
	}

	for _, tt := range tests {
		t.Run(tt.dtype.String(), func(t *testing.T) {
			if got := tt.dtype.Width(); got != tt.expected {
				t.Errorf("Width() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestParseDtype(t *testing.T) {
	tests := []struct {
		name string
		want Dtype
	}{
		{"U8", DtypeU8},
		{"U12", DtypeU12},
		{"U16", DtypeU16},
		{"U32", DtypeU32},
		{"U64", DtypeU64},
		{"F32", DtypeF32},
		{"F64", DtypeF64},
		{"u8", DtypeNone},
		{"NONE", DtypeNone},
		{"", DtypeNone},
		{"U24", DtypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDtype(tt.name); got != tt.want {
				t.Errorf("ParseDtype(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDtypes_RoundTripNames(t *testing.T) {
	all := Dtypes()
	if len(all) != 7 {
		t.Fatalf("len(Dtypes()) = %d, want 7", len(all))
	}
	for _, d := range all {
		if got := ParseDtype(d.String()); got != d {
			t.Errorf("ParseDtype(%q) = %v, want %v", d.String(), got, d)
		}
	}
}

func TestSampleCount(t *testing.T) {
	tests := []struct {
		n     int
		dtype Dtype
		want  int
	}{
		{0, DtypeU8, 0},
		{9, DtypeU8, 9},
		{9, DtypeU16, 4},
		{9, DtypeU32, 2},
		{9, DtypeU64, 1},
		{7, DtypeF64, 0},
		{9, DtypeNone, 0},
	}
	for _, tt := range tests {
		if got := SampleCount(tt.n, tt.dtype); got != tt.want {
			t.Errorf("SampleCount(%d, %v) = %d, want %d", tt.n, tt.dtype, got, tt.want)
		}
	}
}

// =============================================================================
// Bucket reduction
// =============================================================================

func TestBucketFunc_Integers(t *testing.T) {
	tests := []struct {
		name  string
		dtype Dtype
		data  []byte
		want  uint8
	}{
		{"U8", DtypeU8, []byte{0x7A}, 0x7A},
		{"U16 high byte", DtypeU16, []byte{0x34, 0x12}, 0x12},
		{"U12 max", DtypeU12, []byte{0xFF, 0x0F}, 0xFF},
		{"U12 ignores high nibble", DtypeU12, []byte{0xFF, 0xFF}, 0xFF},
		{"U12 mid", DtypeU12, []byte{0x20, 0x01}, 0x12},
		{"U32 top byte", DtypeU32, []byte{0xFF, 0xFF, 0xFF, 0xAB}, 0xAB},
		{"U64 top byte", DtypeU64, []byte{1, 2, 3, 4, 5, 6, 7, 0xCD}, 0xCD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bucketFunc(tt.dtype)(tt.data); got != tt.want {
				t.Errorf("bucket = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestFloat32Bucket(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	tests := []struct {
		name string
		in   float32
		want uint8
	}{
		{"+0", 0, 128},
		{"-0 folds onto +0", negZero, 128},
		{"1", 1, 0xBF},
		{"-1", -1, 0x40},
		{"max finite", math.MaxFloat32, NonFiniteBucket - 1},
		{"min finite", -math.MaxFloat32, 0},
		{"NaN", float32(math.NaN()), NonFiniteBucket},
		{"+Inf", float32(math.Inf(1)), NonFiniteBucket},
		{"-Inf", float32(math.Inf(-1)), NonFiniteBucket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := float32Bucket(tt.in); got != tt.want {
				t.Errorf("float32Bucket(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFloat64Bucket(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want uint8
	}{
		{"+0", 0, 128},
		{"-0 folds onto +0", math.Copysign(0, -1), 128},
		{"1", 1, 0xBF},
		{"-1", -1, 0x40},
		{"max finite", math.MaxFloat64, NonFiniteBucket - 1},
		{"NaN", math.NaN(), NonFiniteBucket},
		{"-Inf", math.Inf(-1), NonFiniteBucket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := float64Bucket(tt.in); got != tt.want {
				t.Errorf("float64Bucket(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFloatBucket_Monotonic(t *testing.T) {
	values := []float64{
		-math.MaxFloat64, -1e300, -1e10, -3.5, -1, -1e-10, -math.SmallestNonzeroFloat64,
		0, math.SmallestNonzeroFloat64, 1e-10, 1, 3.5, 1e10, 1e300, math.MaxFloat64,
	}
	prev := uint8(0)
	for _, v := range values {
		b := float64Bucket(v)
		if b < prev {
			t.Errorf("float64Bucket(%g) = %d, below previous %d", v, b, prev)
		}
		prev = b
	}
}

func TestBucketize_F32(t *testing.T) {
	buf := make([]byte, 4*3+2)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(1))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(-1))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(float32(math.NaN())))

	got := bucketize(buf, DtypeF32)
	want := []uint8{0xBF, 0x40, NonFiniteBucket}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (trailing partial sample must be dropped)", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket[%d] = %#x, want %#x", i, got[i], want[i])
		}
	}
}
