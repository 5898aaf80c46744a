package bytestats

import (
	"fmt"
	"strings"
)

// HexRowBytes is the number of bytes shown per hex dump row.
const HexRowBytes = 16

// HexRow is one row of a hex dump: up to HexRowBytes bytes and the offset
// of the first.
type HexRow struct {
	Offset int64
	Bytes  []byte
}

// HexRows returns up to n rows of buf beginning with the row that holds
// byte start. Row offsets are multiples of HexRowBytes. An out of range
// start yields no rows.
func HexRows(buf []byte, start, n int) []HexRow {
	if start < 0 || start >= len(buf) || n <= 0 {
		return nil
	}
	lo := start / HexRowBytes * HexRowBytes
	rows := make([]HexRow, 0, min(n, (len(buf)-lo-1)/HexRowBytes+1))
	for ; lo < len(buf) && len(rows) < n; lo += HexRowBytes {
		rows = append(rows, HexRow{
			Offset: int64(lo),
			Bytes:  buf[lo:min(lo+HexRowBytes, len(buf))],
		})
	}
	return rows
}

// Printable reports whether the hex dump shows b as itself in the text
// column. Everything else is shown as '.'.
func Printable(b byte) bool {
	return b >= 0x20 && b <= 0x7e
}

// OffsetLabel formats the offset as "0x hhhh llll", the high and low 16 bits
// in hex.
func (r HexRow) OffsetLabel() string {
	return fmt.Sprintf("0x %04x %04x", (r.Offset>>16)&0xffff, r.Offset&0xffff)
}

// Hex returns the bytes as two-digit hex separated by spaces, with a wider
// gap between the two halves of the row.
func (r HexRow) Hex() string {
	var b strings.Builder
	for i, c := range r.Bytes {
		b.WriteString(HexSeparator(i))
		fmt.Fprintf(&b, "%02x", c)
	}
	return b.String()
}

// HexSeparator returns the gap written before the i-th byte of a row.
func HexSeparator(i int) string {
	switch {
	case i == 0:
		return ""
	case i == HexRowBytes/2:
		return "  "
	}
	return " "
}

// Text returns the printable column of the row.
func (r HexRow) Text() string {
	out := make([]byte, len(r.Bytes))
	for i, c := range r.Bytes {
		if Printable(c) {
			out[i] = c
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}

// hexWidth is the length of Hex for a full row: two digits per byte, single
// gaps and one double gap.
const hexWidth = 3 * HexRowBytes

// String lays out offset, hex and text columns. Short rows are padded so
// text columns line up.
func (r HexRow) String() string {
	return fmt.Sprintf("%s  %-*s  %s", r.OffsetLabel(), hexWidth, r.Hex(), r.Text())
}
