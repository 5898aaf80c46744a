package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/binvis/bytestats"
)

// Overview strip size in terminal cells.
const (
	stripWidth  = 32
	stripHeight = 24
)

// selectionStep is how far one key press moves a band.
const selectionStep = 0.02

// cameraTicks is how many camera steps one key press applies.
const cameraTicks = 10

// hexPaneRows is the height of the hex pane under the report.
const hexPaneRows = 8

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Grow   key.Binding
	Shrink key.Binding
	Reset  key.Binding
	Dtype  key.Binding
	Layout key.Binding
	Turn   key.Binding
	Tilt   key.Binding
	Zoom   key.Binding
	Save   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Grow, k.Shrink, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Grow, k.Shrink, k.Reset},
		{k.Dtype, k.Layout, k.Save},
		{k.Turn, k.Tilt, k.Zoom},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
	Grow:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "grow")),
	Shrink: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "shrink")),
	Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "select all")),
	Dtype:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "next dtype")),
	Layout: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "overview mode")),
	Turn:   key.NewBinding(key.WithKeys("a", "d"), key.WithHelp("a/d", "turn cloud")),
	Tilt:   key.NewBinding(key.WithKeys("w", "x"), key.WithHelp("w/x", "tilt cloud")),
	Zoom:   key.NewBinding(key.WithKeys("z", "Z"), key.WithHelp("z/Z", "zoom cloud")),
	Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save views")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type interactiveModel struct {
	v       *viewer
	help    help.Model
	strip   *bytestats.Overview
	report  string
	status  string
	err     error
	pending int
}

// reportMsg carries a report computed off the UI goroutine. seq drops
// results overtaken by a newer selection.
type reportMsg struct {
	seq    int
	report string
	err    error
}

type savedMsg struct {
	paths []string
	err   error
}

func newInteractiveModel(v *viewer) *interactiveModel {
	m := &interactiveModel{v: v, help: help.New()}
	m.rebuildStrip()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.refresh()
}

// refresh recomputes the report for the current selection.
func (m *interactiveModel) refresh() tea.Cmd {
	m.pending++
	seq := m.pending
	v := *m.v
	return func() tea.Msg {
		r, err := v.sel.Range(len(v.data))
		if err != nil {
			return reportMsg{seq: seq, err: err}
		}
		rep, err := buildReport(v.a, v.cfg.path, v.data, r, v.dtype, v.cfg.window)
		if err != nil {
			return reportMsg{seq: seq, err: err}
		}
		return reportMsg{seq: seq, report: rep.render(newPrinter())}
	}
}

// save writes the views of the current selection.
func (m *interactiveModel) save() tea.Cmd {
	v := *m.v
	return func() tea.Msg {
		dir := v.cfg.out
		if dir == "" {
			dir = "."
		}
		paths, err := v.writeViews(dir)
		return savedMsg{paths: paths, err: err}
	}
}

func (m *interactiveModel) rebuildStrip() {
	o, err := bytestats.BuildOverview(m.v.data, stripWidth, stripHeight, m.v.layout)
	if err != nil {
		m.err = err
		return
	}
	m.strip = o
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		sel := m.v.sel
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, keys.Up):
			sel = sel.Shift(-selectionStep)
		case key.Matches(msg, keys.Down):
			sel = sel.Shift(selectionStep)
		case key.Matches(msg, keys.Grow):
			sel = sel.MoveLower(sel.Lower + selectionStep)
		case key.Matches(msg, keys.Shrink):
			sel = sel.MoveLower(sel.Lower - selectionStep)
		case key.Matches(msg, keys.Reset):
			sel = bytestats.FullSelection()
		case key.Matches(msg, keys.Dtype):
			m.v.dtype = nextDtype(m.v.dtype)
			return m, m.refresh()
		case key.Matches(msg, keys.Layout):
			m.v.layout = m.v.layout.Next()
			m.rebuildStrip()
			return m, nil
		case key.Matches(msg, keys.Turn), key.Matches(msg, keys.Tilt), key.Matches(msg, keys.Zoom):
			for range cameraTicks {
				m.v.camera.Step(cameraMotion[msg.String()])
			}
			return m, nil
		case key.Matches(msg, keys.Save):
			m.status = "saving views..."
			return m, m.save()
		default:
			return m, nil
		}
		if sel == m.v.sel {
			return m, nil
		}
		m.v.sel = sel
		return m, m.refresh()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case reportMsg:
		if msg.seq != m.pending {
			return m, nil
		}
		m.report, m.err = msg.report, msg.err

	case savedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("save failed: " + msg.err.Error())
		} else {
			m.status = fmt.Sprintf("saved %d views", len(msg.paths))
		}
	}
	return m, nil
}

// cameraMotion maps the camera keys to the motion they hold.
var cameraMotion = map[string]bytestats.Motion{
	"a": bytestats.MoveLeft,
	"d": bytestats.MoveRight,
	"w": bytestats.MoveUp,
	"x": bytestats.MoveDown,
	"z": bytestats.ScaleUp,
	"Z": bytestats.ScaleDown,
}

func nextDtype(dt bytestats.Dtype) bytestats.Dtype {
	all := bytestats.Dtypes()
	for i, d := range all {
		if d == dt {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (m *interactiveModel) View() string {
	left := m.stripView()

	right := m.report
	if m.err != nil {
		right = errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	} else if right == "" {
		right = "Analyzing..."
	}

	if r, err := m.v.sel.Range(len(m.v.data)); err == nil && r.Len() > 0 {
		right += "\n" + labelStyle.Render("hex") + "\n" + hexDump(m.v.data, r.Start, hexPaneRows)
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(keys)))
	return b.String()
}

// stripView draws the overview with one block per cell and marks the rows
// inside the selection.
func (m *interactiveModel) stripView() string {
	if m.strip == nil {
		return ""
	}
	o := m.strip
	upper := int(m.v.sel.Upper * float64(o.Height))
	lower := int(m.v.sel.Lower * float64(o.Height))

	var b strings.Builder
	for y := range o.Height {
		marker := "  "
		if y >= upper && y < max(lower, upper+1) {
			marker = barStyle.Render("▌ ")
		}
		b.WriteString(marker)
		for x := range o.Width {
			c := o.At(x, y)
			hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("█"))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("  %v · %s", m.v.dtype, layoutName(m.v.layout))))
	b.WriteString("\n")
	cam := m.v.camera
	b.WriteString(helpStyle.Render(fmt.Sprintf("  cloud %.0f°/%.0f° ×%.2f", cam.AngleY, cam.AngleX, cam.ScaleX)))
	return b.String()
}

func layoutName(o bytestats.OverviewOptions) string {
	colour := "value"
	if o.ByteClasses {
		colour = "classes"
	}
	order := "raster"
	if o.Hilbert {
		order = "curve"
	}
	return colour + "/" + order
}

func runInteractive(v *viewer) error {
	p := tea.NewProgram(newInteractiveModel(v), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
