// Package ui renders the live progress of batch runs.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cxxbind/internal/driver"
)

// Status is the state of one batch item.
type Status int

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
	StatusCached
)

// Event moves one item of a batch forward. Phase is the driver phase for
// StatusWorking.
type Event struct {
	Item   string
	Phase  string
	Status Status
}

// PhaseEvent converts a driver phase boundary into a progress event.
func PhaseEvent(item string, ev driver.PhaseEvent) Event {
	return Event{Item: item, Phase: ev.Name, Status: StatusWorking}
}

type progressModel struct {
	title   string
	events  <-chan Event
	spinner spinner.Model
	prog    progress.Model
	items   []item
	index   map[string]int
	width   int
	done    bool
}

type item struct {
	name   string
	status Status
	phase  string
}

type eventMsg Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders batch progress.
// It quits once events is closed.
func NewProgressModel(title string, items []string, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	list := make([]item, 0, len(items))
	index := make(map[string]int, len(items))
	for i, name := range items {
		list = append(list, item{name: name})
		index[name] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   list,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = "done: " + header
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, it := range m.items {
		label := it.label()
		styled := styleStatus(it.status).Render(fmt.Sprintf("%12s", label))
		fmt.Fprintf(&b, "  %s %s\n", styled, truncate(it.name, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev Event) tea.Cmd {
	idx, ok := m.index[ev.Item]
	if !ok {
		return nil
	}
	m.items[idx].status = ev.Status
	if ev.Phase != "" {
		m.items[idx].phase = ev.Phase
	}
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, it := range m.items {
		switch it.status {
		case StatusDone, StatusError, StatusCached:
			total += 1.0
		case StatusWorking:
			total += phaseProgress(it.phase)
		}
	}
	return total / float64(len(m.items))
}

func (it item) label() string {
	switch it.status {
	case StatusWorking:
		if it.phase != "" {
			return it.phase
		}
		return "working"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	case StatusCached:
		return "cached"
	}
	return "queued"
}

func phaseProgress(phase string) float64 {
	switch phase {
	case "frontend":
		return 0.1
	case "check":
		return 0.4
	case "symbols":
		return 0.5
	case "rename":
		return 0.55
	case "inherit":
		return 0.6
	case "bind":
		return 0.75
	case "emit":
		return 0.9
	}
	return 0.0
}

func styleStatus(status Status) lipgloss.Style {
	switch status {
	case StatusDone, StatusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
