package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/binvis/bytestats"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// topValues is how many histogram buckets the report lists.
const topValues = 8

type bucketCount struct {
	bucket int
	count  uint64
}

// report summarises one selection of a file.
type report struct {
	name    string
	size    int
	sel     bytestats.Range
	dtype   bytestats.Dtype
	samples int

	windows       int
	lo, hi, mean  float64
	shannon       float64
	top           []bucketCount
	classes       [5]int
	distinctPairs int
}

// buildReport analyzes the selected bytes of data.
func buildReport(a *bytestats.Analyzer, name string, data []byte, sel bytestats.Range, dt bytestats.Dtype, window int) (*report, error) {
	buf := sel.Slice(data)
	r := &report{
		name:    name,
		size:    len(data),
		sel:     sel,
		dtype:   dt,
		samples: bytestats.SampleCount(len(buf), dt),
		shannon: bytestats.ShannonEntropy(buf),
	}

	h1, err := a.Histogram1D(buf, dt)
	if err != nil {
		return nil, fmt.Errorf("value histogram: %w", err)
	}
	r.top = topBuckets(&h1, topValues)

	h2, err := a.Histogram2D(buf, dt)
	if err != nil {
		return nil, fmt.Errorf("pair histogram: %w", err)
	}
	for _, c := range h2 {
		if c > 0 {
			r.distinctPairs++
		}
	}

	curve, err := a.Entropy(buf, window)
	if err != nil {
		return nil, fmt.Errorf("entropy: %w", err)
	}
	r.windows = len(curve)
	r.lo, r.hi, r.mean = curve.Stats()

	for _, b := range buf {
		r.classes[bytestats.ClassifyByte(b)]++
	}
	return r, nil
}

// topBuckets returns the n fullest non-empty buckets, fullest first.
func topBuckets(h *bytestats.Histogram1D, n int) []bucketCount {
	var all []bucketCount
	for i, c := range h {
		if c > 0 {
			all = append(all, bucketCount{i, c})
		}
	}
	slices.SortStableFunc(all, func(a, b bucketCount) int {
		return cmp.Compare(b.count, a.count)
	})
	return all[:min(n, len(all))]
}

// render lays the report out for a terminal. Counts are grouped by p.
func (r *report) render(p *message.Printer) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("binstat"))
	b.WriteString(" ")
	b.WriteString(r.name)
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	row("size", p.Sprintf("%d bytes", r.size))
	row("selection", p.Sprintf("%d..%d (%d bytes)", r.sel.Start, r.sel.End, r.sel.Len()))
	row("samples", p.Sprintf("%d × %v", r.samples, r.dtype))
	row("entropy", p.Sprintf("min %.3f  max %.3f  mean %.3f  (%d windows)", r.lo, r.hi, r.mean, r.windows))
	row("shannon", p.Sprintf("%.3f bits/byte", r.shannon))
	row("pairs", p.Sprintf("%d distinct of %d", r.distinctPairs, bytestats.Bins2D))

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("classes"))
	b.WriteString("\n")
	total := max(r.sel.Len(), 1)
	for c, n := range r.classes {
		name := bytestats.ByteClass(c).String()
		b.WriteString(fmt.Sprintf("  %-6s %s %s\n", name, bar(n, total, 30),
			valueStyle.Render(p.Sprintf("%d", n))))
	}

	if len(r.top) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("top values"))
		b.WriteString("\n")
		for _, t := range r.top {
			b.WriteString(fmt.Sprintf("  0x%02x   %s %s\n", t.bucket, bar(int(t.count), r.samples, 30),
				valueStyle.Render(p.Sprintf("%d", t.count))))
		}
	}
	return b.String()
}

// bar draws n/total as a fixed-width bar.
func bar(n, total, width int) string {
	if total <= 0 {
		total = 1
	}
	full := min(n*width/total, width)
	if n > 0 && full == 0 {
		full = 1
	}
	return barStyle.Render(strings.Repeat("█", full)) + strings.Repeat("·", width-full)
}

// newPrinter groups digits the English way.
func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}
