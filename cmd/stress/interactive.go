package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/thinptr/arena"
	"github.com/wippyai/thinptr/track"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type stressModel struct {
	cfg  config
	reg  *track.Registry
	spin spinner.Model
	ch   chan tea.Msg

	rounds  int
	lastErr error
	done    bool
}

type progressMsg struct {
	rounds int
}

type stressDoneMsg struct {
	err error
}

func newStressModel(cfg config) *stressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statStyle
	return &stressModel{
		cfg:  cfg,
		reg:  track.NewRegistry(),
		spin: sp,
		ch:   make(chan tea.Msg, 1),
	}
}

func (m *stressModel) Init() tea.Cmd {
	track.Enable(m.reg)
	go m.runStress()
	return tea.Batch(m.spin.Tick, m.waitProgress)
}

func (m *stressModel) runStress() {
	for r := 1; r <= m.cfg.rounds; r++ {
		if err := round(m.cfg); err != nil {
			m.ch <- stressDoneMsg{err: err}
			return
		}
		m.ch <- progressMsg{rounds: r}
	}
	m.ch <- stressDoneMsg{}
}

func (m *stressModel) waitProgress() tea.Msg {
	return <-m.ch
}

func (m *stressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			track.Disable()
			return m, tea.Quit
		}

	case progressMsg:
		m.rounds = msg.rounds
		return m, m.waitProgress

	case stressDoneMsg:
		m.done = true
		m.lastErr = msg.err
		if m.lastErr == nil {
			m.lastErr = m.reg.Err()
		}
		track.Disable()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *stressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Thin Pointer Stress"))
	b.WriteString(fmt.Sprintf(" %d workers x %d clones\n\n", m.cfg.workers, m.cfg.clones))

	if m.done {
		if m.lastErr != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("FAILED: %v", m.lastErr)))
		} else {
			b.WriteString(okStyle.Render(fmt.Sprintf("OK: %d rounds, no leaks, no violations", m.rounds)))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(fmt.Sprintf("%s round %d/%d\n", m.spin.View(), m.rounds, m.cfg.rounds))
	}

	b.WriteString(statStyle.Render(fmt.Sprintf("live units: %d", m.reg.Live())))
	b.WriteString("\n")
	if s, ok := arena.Default.(*arena.Slab); ok {
		st := s.Stats()
		b.WriteString(statStyle.Render(fmt.Sprintf("arena: allocated=%d free=%d mapped=%d",
			st.Allocated, st.Free, st.Mapped)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q quit"))
	return b.String()
}

func runInteractive(cfg config) error {
	p := tea.NewProgram(newStressModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
