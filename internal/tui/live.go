// Package tui renders a finished run as an animated terminal playback:
// concentration curves grow over the time grid while a side panel tracks
// the instantaneous values.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/enzymekit/kinsim/internal/kin"
)

const (
	graphWidth  = 72
	graphHeight = 16
	frameRate   = 30
)

var (
	chartStyle    = lipgloss.NewStyle().Padding(1, 2)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(36)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model animates a playhead over an immutable trajectory.
type Model struct {
	name     string
	traj     *kin.Trajectory
	species  []string
	series   [][]float64
	selected int
	head     int
	running  bool
	overlay  bool
}

func NewModel(name string, traj *kin.Trajectory) Model {
	species := traj.SpeciesNames()
	series := make([][]float64, len(species))
	for i, sp := range species {
		series[i], _ = traj.Series(sp)
	}
	return Model{
		name:    name,
		traj:    traj,
		species: species,
		series:  series,
		head:    1,
		running: true,
		overlay: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.head = 1
			m.running = true
		case "tab":
			m.selected = (m.selected + 1) % len(m.species)
		case "a":
			m.overlay = !m.overlay
		case "[":
			m.running = false
			if m.head > 1 {
				m.head--
			}
		case "]":
			m.running = false
			if m.head < m.traj.Len() {
				m.head++
			}
		}
	case TickMsg:
		if m.running && m.head < m.traj.Len() {
			m.head++
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	times := m.traj.Times()
	t := times[m.head-1]
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f / %.2f", t, times[len(times)-1])) + "\n")
	s.WriteString(labelStyle.Render("Sample") + valueStyle.Render(fmt.Sprintf("%d / %d", m.head, m.traj.Len())) + "\n")

	s.WriteString("\nSPECIES\n")
	state := m.traj.At(m.head - 1)
	for i, sp := range m.species {
		line := fmt.Sprintf("%-10s %10.4f", sp, state[i])
		if i == m.selected {
			s.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Replay Q:Quit\nTab:Species A:Overlay [ ]:Scrub"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		chartStyle.Render(m.chart()),
		panelStyle.Render(s.String()))
}

func (m Model) status() string {
	switch {
	case m.head >= m.traj.Len():
		return "DONE"
	case !m.running:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

func (m Model) chart() string {
	opts := []asciigraph.Option{
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
	}

	if m.overlay {
		shown := make([][]float64, len(m.series))
		for i, s := range m.series {
			shown[i] = s[:m.head]
		}
		return asciigraph.PlotMany(shown, append(opts,
			asciigraph.Caption(strings.Join(m.species, "  ")))...)
	}

	sp := m.species[m.selected]
	return asciigraph.Plot(m.series[m.selected][:m.head], append(opts,
		asciigraph.Caption(sp))...)
}

// Run blocks until the viewer exits.
func Run(name string, traj *kin.Trajectory) error {
	if traj == nil || traj.Len() < 2 {
		return fmt.Errorf("tui: nothing to display")
	}
	_, err := tea.NewProgram(NewModel(name, traj)).Run()
	return err
}
