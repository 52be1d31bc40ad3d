// Package tui implements the live terminal monitor. A recurring frame
// message drives the session with real elapsed wall-clock time; the
// engine decides how many samples each frame owes.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ecgsim/internal/analysis"
	"github.com/san-kum/ecgsim/internal/config"
	"github.com/san-kum/ecgsim/internal/ecg"
	"github.com/san-kum/ecgsim/internal/session"
	"github.com/san-kum/ecgsim/internal/viz"
)

var (
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// shared holds pointer state so every value copy of the model drives the
// same session and canvas.
type shared struct {
	sess   *session.Session
	det    *analysis.PeakDetector
	canvas *viz.Canvas
}

// Model is the root Bubble Tea model for the live monitor.
type Model struct {
	cfg    *config.Config
	shared *shared

	paused    bool
	bpm       float64
	fps       float64
	lastFrame time.Time

	width  int
	height int
}

// New creates the monitor for a validated configuration.
func New(cfg *config.Config, sess *session.Session) Model {
	return Model{
		cfg: cfg,
		shared: &shared{
			sess:   sess,
			det:    analysis.NewPeakDetector(),
			canvas: viz.NewCanvas(80, 16),
		},
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cols := msg.Width - 4
		rows := msg.Height - 7
		if cols < 20 {
			cols = 20
		}
		if rows < 4 {
			rows = 4
		}
		m.shared.canvas = viz.NewCanvas(cols, rows)
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		if m.paused {
			m.shared.sess.Touch(now)
			return m, tick()
		}

		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 1.0 / dt
			}
		}
		m.lastFrame = now

		n := m.shared.sess.Tick(now)
		if n > 0 {
			for _, s := range m.shared.sess.Generator().Buffer().Tail(n) {
				if bpm, beat := m.shared.det.Process(s.Value, s.Time); beat && bpm > 0 {
					m.bpm = bpm
				}
			}
		}
		return m, tick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case " ":
		m.paused = !m.paused

	case "+", "=":
		m.cfg.Gain *= 1.25

	case "-", "_":
		if g := m.cfg.Gain / 1.25; g >= 0.1 {
			m.cfg.Gain = g
		}

	case "]":
		m.setHeartRate(m.cfg.HeartRate + 10)

	case "[":
		m.setHeartRate(m.cfg.HeartRate - 10)

	case "r":
		m.reset()
	}
	return m, nil
}

// setHeartRate applies a new rate and restarts the session; the derived
// beat schedule only changes on reset.
func (m Model) setHeartRate(bpm float64) {
	if bpm < ecg.MinHeartRate {
		bpm = ecg.MinHeartRate
	}
	if bpm > 250 {
		bpm = 250
	}
	m.cfg.HeartRate = bpm
	m.reset()
}

func (m Model) reset() {
	sess, err := session.New(m.cfg.Params(), time.Now().UnixNano())
	if err != nil {
		return // config was validated at startup; keep the old session
	}
	m.shared.sess = sess
	m.shared.det.Reset()
}

func (m Model) View() string {
	canvas := m.shared.canvas
	canvas.Clear()
	viz.DrawBaseline(canvas, m.cfg.Display())
	viz.DrawTrace(canvas, m.shared.sess.Snapshot(), m.cfg.Display())

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(green.Render(canvas.String()))
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(dim.Render("  space pause  +/- gain  [/] rate  r reset  q quit"))
	return b.String()
}

func (m Model) headerView() string {
	title := cyan.Render("  ecgsim")
	state := ""
	if m.paused {
		state = yellow.Render("  [paused]")
	}
	return title + dim.Render(fmt.Sprintf("  lead II  %.0f sps", m.cfg.SamplingRate)) + state
}

func (m Model) statusView() string {
	measured := "--"
	if m.bpm > 0 {
		measured = fmt.Sprintf("%.0f", m.bpm)
	}
	return fmt.Sprintf("  %s %s  %s %.0f  %s %.2fx  %s %.1fs  %s %.0f",
		green.Render("bpm"), measured,
		dim.Render("set"), m.cfg.HeartRate,
		dim.Render("gain"), m.cfg.Gain,
		dim.Render("t"), m.shared.sess.Generator().Time(),
		dim.Render("fps"), m.fps,
	)
}

// Run starts the monitor in the alternate screen and blocks until quit.
func Run(cfg *config.Config) error {
	sess, err := session.New(cfg.Params(), seedFor(cfg))
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(New(cfg, sess), tea.WithAltScreen()).Run()
	return err
}

func seedFor(cfg *config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}
