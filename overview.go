package bytestats

import "fmt"

// ByteClass groups byte values for the overview colouring.
type ByteClass uint8

const (
	// ClassZero is 0x00.
	ClassZero ByteClass = iota
	// ClassLow is 0x01-0x1F, control characters.
	ClassLow
	// ClassASCII is 0x20-0x7F, printable text.
	ClassASCII
	// ClassHigh is 0x80-0xFE.
	ClassHigh
	// ClassFull is 0xFF.
	ClassFull

	byteClassCount
)

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// The hex dump lifts zero and control bytes off a dark background, so its
// colours differ from the overview's for those two classes.
var byteClassTable = [byteClassCount]struct {
	name  string
	color RGB
	hex   RGB
}{
	ClassZero:  {"zero", RGB{0x00, 0x00, 0x00}, RGB{0x55, 0x55, 0x55}},
	ClassLow:   {"low", RGB{0x00, 0x00, 0xf0}, RGB{0x60, 0x60, 0xf0}},
	ClassASCII: {"ascii", RGB{0x00, 0xf0, 0x00}, RGB{0x00, 0xf0, 0x00}},
	ClassHigh:  {"high", RGB{0xf0, 0x00, 0x00}, RGB{0xf0, 0x00, 0x00}},
	ClassFull:  {"full", RGB{0xff, 0xff, 0xff}, RGB{0xff, 0xff, 0xff}},
}

// ClassifyByte returns the class of b.
func ClassifyByte(b byte) ByteClass {
	switch {
	case b == 0x00:
		return ClassZero
	case b <= 0x1f:
		return ClassLow
	case b <= 0x7f:
		return ClassASCII
	case b < 0xff:
		return ClassHigh
	}
	return ClassFull
}

// String returns the class name.
func (c ByteClass) String() string {
	if c >= byteClassCount {
		return fmt.Sprintf("ByteClass(%d)", uint8(c))
	}
	return byteClassTable[c].name
}

// Color returns the colour the overview paints the class with.
func (c ByteClass) Color() RGB {
	if c >= byteClassCount {
		return RGB{}
	}
	return byteClassTable[c].color
}

// HexColor returns the colour the hex dump prints the class with.
func (c ByteClass) HexColor() RGB {
	if c >= byteClassCount {
		return RGB{}
	}
	return byteClassTable[c].hex
}

// OverviewOptions selects how overview cells are coloured and laid out.
type OverviewOptions struct {
	// ByteClasses colours cells by averaged byte class; otherwise the mean
	// byte value drives the green channel.
	ByteClasses bool

	// Hilbert lays cells along the Gilbert curve; otherwise in raster order.
	Hilbert bool
}

// Next cycles to the following display mode. Successive modes differ in one
// option only: both, classes only, neither, curve only, both again.
func (o OverviewOptions) Next() OverviewOptions {
	var v uint8
	if o.ByteClasses {
		v |= 2
	}
	if o.Hilbert {
		v |= 1
	}
	v = binaryToGray((grayToBinary(v) + 1) & 3)
	return OverviewOptions{ByteClasses: v&2 != 0, Hilbert: v&1 != 0}
}

func binaryToGray(v uint8) uint8 {
	return v ^ (v >> 1)
}

func grayToBinary(v uint8) uint8 {
	for mask := v >> 1; mask != 0; mask >>= 1 {
		v ^= mask
	}
	return v
}

// Overview is a downsampled picture of a whole buffer. Each cell summarises
// BytesPerCell consecutive bytes; cells past the end of the data stay black.
type Overview struct {
	Width, Height int
	BytesPerCell  int
	Cells         []RGB
}

// At returns the colour of cell (x, y).
func (o *Overview) At(x, y int) RGB {
	return o.Cells[y*o.Width+x]
}

// BuildOverview summarises buf on a grid width cells wide sized for a view of
// width×height. The grid grows taller than height only by the rounding of
// the bytes-per-cell factor, and shrinks when the data is short.
func BuildOverview(buf []byte, width, height int, opts OverviewOptions) (*Overview, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: overview %dx%d", ErrInvalidArgument, width, height)
	}

	n := len(buf)
	perCell := n/(width*height) + 1
	o := &Overview{
		Width:        width,
		Height:       n/perCell/width + 1,
		BytesPerCell: perCell,
	}
	o.Cells = make([]RGB, o.Width*o.Height)

	var path CurvePath
	if opts.Hilbert {
		var err error
		if path, err = GenerateCurve(o.Width, o.Height); err != nil {
			return nil, err
		}
	}

	for cell, i := 0, 0; i < n; cell++ {
		end := min(i+perCell, n)
		c := summarize(buf[i:end], opts.ByteClasses)
		i = end

		if path == nil {
			o.Cells[cell] = c
		} else {
			p := path[cell]
			o.Cells[p.Y*o.Width+p.X] = c
		}
	}

	Logger().Debug("bytestats: overview",
		"bytes", n, "cells", len(o.Cells), "bytes_per_cell", perCell)
	return o, nil
}

// summarize colours one cell from its bytes.
func summarize(block []byte, classes bool) RGB {
	if !classes {
		sum := 0
		for _, b := range block {
			sum += int(b)
		}
		return RGB{20, uint8(sum / len(block)), 20}
	}

	var r, g, b int
	for _, v := range block {
		c := byteClassTable[ClassifyByte(v)].color
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := len(block)
	return RGB{uint8(min(r/n, 255)), uint8(min(g/n, 255)), uint8(min(b/n, 255))}
}
