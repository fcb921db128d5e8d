// Package tui is a terminal host for the wheel: the reel drawn as rows of
// labels with a pointer on the middle row.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/DoyleJ11/spin-wheel/internal/options"
	"github.com/DoyleJ11/spin-wheel/internal/wheel"
)

const (
	frameInterval = 16 * time.Millisecond
	rowUnits      = 60
	defaultRows   = 9
	maxRows       = 15
	reelWidth     = 32
)

// Generator is the options server as seen by the terminal host.
type Generator interface {
	Current(ctx context.Context) ([]string, error)
	Generate(ctx context.Context, prompt string) ([]string, error)
}

type Config struct {
	Generator Generator // nil keeps the built in options
	Clock     wheel.Clock
	Rand      wheel.Rand
	Duration  time.Duration
	Logger    *zap.Logger
}

type frameMsg time.Time

type optionsMsg struct {
	labels  []string
	err     error
	initial bool
}

type Model struct {
	engine *wheel.Engine
	frames *wheel.FrameQueue
	clock  wheel.Clock
	gen    Generator
	logger *zap.Logger

	result <-chan wheel.Result

	input     textinput.Model
	prompting bool
	loading   bool
	status    string
}

func New(cfg Config) (*Model, error) {
	if cfg.Clock == nil {
		cfg.Clock = wheel.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	frames := &wheel.FrameQueue{}
	reel := wheel.DefaultReel()
	reel.SlotSize = rowUnits
	reel.Height = defaultRows * rowUnits

	engine, err := wheel.New(wheel.Config{
		Layout:    reel,
		Duration:  cfg.Duration,
		Clock:     cfg.Clock,
		Scheduler: frames,
		Rand:      cfg.Rand,
		Logger:    cfg.Logger.Named("wheel"),
	}, wheel.DefaultOptions())
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Prompt = "prompt> "
	ti.Placeholder = "nba teams, or: pizza, tacos, sushi"
	ti.CharLimit = options.MaxPromptLength

	return &Model{
		engine: engine,
		frames: frames,
		clock:  cfg.Clock,
		gen:    cfg.Generator,
		logger: cfg.Logger,
		input:  ti,
		status: "space to spin, / for a new wheel, q to quit",
	}, nil
}

func (m *Model) Init() tea.Cmd {
	if m.gen == nil {
		return nil
	}
	m.loading = true
	gen := m.gen
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		labels, err := gen.Current(ctx)
		return optionsMsg{labels: labels, err: err, initial: true}
	}
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Height)
		return m, nil

	case frameMsg:
		m.frames.Flush(m.clock.Now())
		m.collect()
		if m.frames.Pending() {
			return m, nextFrame()
		}
		return m, nil

	case optionsMsg:
		m.loading = false
		m.applyOptions(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.prompting {
			return m.updatePrompt(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "enter":
			return m, m.spin()
		case "/":
			m.prompting = true
			m.input.Reset()
			return m, m.input.Focus()
		}
	}
	return m, nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompting = false
		m.input.Blur()
		return m, nil
	case "enter":
		prompt := strings.TrimSpace(m.input.Value())
		m.prompting = false
		m.input.Blur()
		if prompt == "" {
			m.status = "prompt cannot be empty"
			return m, nil
		}
		return m, m.generate(prompt)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) spin() tea.Cmd {
	ch, err := m.engine.Spin()
	if err != nil {
		m.status = "already spinning"
		return nil
	}
	m.result = ch
	m.status = "spinning..."
	return nextFrame()
}

func (m *Model) generate(prompt string) tea.Cmd {
	if m.gen == nil {
		labels := splitLocal(prompt)
		if len(labels) == 0 {
			m.status = "no options server; enter a comma separated list"
			return nil
		}
		return func() tea.Msg { return optionsMsg{labels: labels} }
	}
	m.loading = true
	m.status = fmt.Sprintf("generating %q...", prompt)
	gen := m.gen
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		labels, err := gen.Generate(ctx, prompt)
		return optionsMsg{labels: labels, err: err}
	}
}

// splitLocal lets the terminal work offline with literal lists.
func splitLocal(prompt string) []string {
	if !strings.Contains(prompt, ",") {
		return nil
	}
	return options.ParseCommaList(prompt)
}

func (m *Model) applyOptions(msg optionsMsg) {
	switch {
	case msg.err != nil && msg.initial:
		m.logger.Warn("current options unavailable", zap.Error(msg.err))
		m.status = "options server unavailable, using built in options"
		return
	case msg.err != nil:
		m.status = "error: " + msg.err.Error()
		return
	case len(msg.labels) == 0:
		if !msg.initial {
			m.status = "no options generated"
		}
		return
	}

	if err := m.engine.SetOptions(wheel.OptionsFromLabels(msg.labels)); err != nil {
		if errors.Is(err, wheel.ErrInvalidState) {
			m.status = "wait for the wheel to stop, then try again"
			return
		}
		m.status = "error: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("%d options loaded", len(msg.labels))
}

func (m *Model) collect() {
	if m.result == nil {
		return
	}
	select {
	case res, ok := <-m.result:
		if ok {
			m.status = "Winner: " + res.Option.Label
		}
		m.result = nil
	default:
	}
}

// resize fits an odd number of rows into the terminal, leaving space for
// the prompt and status lines. While spinning the engine holds the new size
// back, so the row count always follows the layout.
func (m *Model) resize(height int) {
	rows := height - 6
	if rows > maxRows {
		rows = maxRows
	}
	if rows < 3 {
		rows = 3
	}
	if rows%2 == 0 {
		rows--
	}
	w, _ := m.engine.Layout().Size()
	m.engine.Resize(w, float64(rows*rowUnits))
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	statusStyle  = lipgloss.NewStyle().Faint(true).MarginTop(1)
	pointerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(wheel.PointerRed.Hex()))
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Spin the wheel"))
	b.WriteString("\n")
	for _, line := range m.reelLines() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.prompting {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	status := m.status
	if m.loading {
		status += " (loading)"
	}
	b.WriteString(statusStyle.Render(status))
	return b.String()
}

// reelLines renders one row per slot, sampling the reel at each row's
// centre. The pointer row is the middle one.
func (m *Model) reelLines() []string {
	opts := m.engine.Options()
	n := len(opts)
	reel, ok := m.engine.Layout().(wheel.Reel)
	if !ok {
		return nil
	}
	_, h := reel.Size()
	rows := int(h) / rowUnits
	pointerRow := int(reel.PointerY()) / rowUnits
	lines := make([]string, rows)
	for row := range rows {
		y := float64(row*rowUnits) + rowUnits/2
		opt := opts[reel.IndexAtY(n, m.engine.Position(), y)]
		cell := lipgloss.NewStyle().
			Width(reelWidth).
			Foreground(lipgloss.Color(wheel.White.Hex())).
			Background(lipgloss.Color(opt.Color.Hex())).
			Align(lipgloss.Center)
		prefix, suffix := "  ", "  "
		if row == pointerRow {
			prefix, suffix = pointerStyle.Render("▶ "), pointerStyle.Render(" ◀")
			cell = cell.Bold(true)
		}
		lines[row] = prefix + cell.Render(truncate(opt.Label, reelWidth-2)) + suffix
	}
	return lines
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

// Winner is the option under the pointer.
func (m *Model) Winner() wheel.Option { return m.engine.CurrentWinnerAtRest() }

func (m *Model) Status() string { return m.status }
