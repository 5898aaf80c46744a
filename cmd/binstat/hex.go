package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/binvis/bytestats"
)

var (
	offsetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	dotStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#606060"))
)

// classStyles colours hex digits by byte class.
var classStyles = func() [bytestats.ClassFull + 1]lipgloss.Style {
	var s [bytestats.ClassFull + 1]lipgloss.Style
	for c := range s {
		rgb := bytestats.ByteClass(c).HexColor()
		s[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)))
	}
	return s
}()

// hexDump renders rows of data from the row holding start, with hex digits
// coloured by class and non-printable bytes shown as dim dots.
func hexDump(data []byte, start, rows int) string {
	var b strings.Builder
	for _, r := range bytestats.HexRows(data, start, rows) {
		b.WriteString(offsetStyle.Render(r.OffsetLabel()))
		b.WriteString("  ")
		for i, c := range r.Bytes {
			b.WriteString(bytestats.HexSeparator(i))
			b.WriteString(classStyles[bytestats.ClassifyByte(c)].Render(fmt.Sprintf("%02x", c)))
		}
		// Pad short rows so the text column lines up.
		b.WriteString(strings.Repeat(" ", 3*(bytestats.HexRowBytes-len(r.Bytes))))
		if len(r.Bytes) <= bytestats.HexRowBytes/2 {
			b.WriteString(" ")
		}
		b.WriteString("  ")
		b.WriteString(hexText(r.Bytes))
		b.WriteString("\n")
	}
	return b.String()
}

// hexText renders the printable column, dimming the substituted dots.
func hexText(row []byte) string {
	var b strings.Builder
	for _, c := range row {
		if bytestats.Printable(c) {
			b.WriteByte(c)
		} else {
			b.WriteString(dotStyle.Render("."))
		}
	}
	return b.String()
}
