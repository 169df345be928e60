// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/version"
)

// Time scale limits for the [ and ] keys.
const (
	MinTimeScale = 1.0 / 64
	MaxTimeScale = 4096.0
)

const (
	keyRotateStep = math.Pi / 18 // 10 degrees per key press
	dollyStep     = 0.9          // Per +/- press or wheel notch
	maxFrameDt    = 0.25         // Wall seconds; longer stalls are not replayed

	headerRows = 1
	hudRows    = 1
	footerRows = 1
)

// FrameMsg is one animation frame.
type FrameMsg time.Time

// Options configures the model.
type Options struct {
	FPS        int
	TimeScale  float64
	ShowLabels bool
	ShowStars  bool
	ShowRings  bool
	Logger     *logging.Logger
}

// Model is the root Bubble Tea model. It owns the scene; every mutation
// happens in Update on the Bubble Tea goroutine.
type Model struct {
	scene *scene.Scene
	log   *logging.Logger

	fps       int
	timeScale float64
	paused    bool
	elapsed   float64 // Simulated seconds
	lastFrame time.Time

	view render.Options

	width  int
	height int
	ready  bool

	dragging   bool
	lastMouseX int
	lastMouseY int
}

// New creates the root model for a built scene.
func New(s *scene.Scene, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.TimeScale <= 0 {
		opts.TimeScale = 1
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	return Model{
		scene:     s,
		log:       opts.Logger.With("component", "ui"),
		fps:       opts.FPS,
		timeScale: clampTimeScale(opts.TimeScale),
		view: render.Options{
			ShowStars:  opts.ShowStars,
			ShowRings:  opts.ShowRings,
			ShowLabels: opts.ShowLabels,
			Focus:      -1,
		},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.fps)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		cols, rows := m.canvasSize()
		m.scene.Resize(cols, rows*2)
		m.log.Debug("resize %dx%d cells, viewport %dx%d px", msg.Width, msg.Height, cols, rows*2)

	case FrameMsg:
		m.advance(time.Time(msg))
		return m, frameCmd(m.fps)
	}

	return m, nil
}

// advance moves simulated time forward by the wall time since the last
// frame and runs the scene's frame update.
func (m *Model) advance(now time.Time) {
	dt := 0.0
	if !m.lastFrame.IsZero() {
		dt = now.Sub(m.lastFrame).Seconds()
	}
	m.lastFrame = now
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameDt {
		dt = maxFrameDt
	}

	simDt := dt * m.timeScale
	if m.paused {
		simDt = 0
	}
	m.elapsed += simDt
	m.scene.Frame(m.elapsed, simDt)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctl := m.scene.Controls

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case " ", "space":
		m.paused = !m.paused
	case "]":
		m.timeScale = clampTimeScale(m.timeScale * 2)
	case "[":
		m.timeScale = clampTimeScale(m.timeScale / 2)

	case "L":
		m.view.ShowLabels = !m.view.ShowLabels
	case "t":
		m.view.ShowStars = !m.view.ShowStars
	case "o":
		m.view.ShowRings = !m.view.ShowRings

	case "n":
		m.cycleFocus(1)
	case "N":
		m.cycleFocus(-1)

	case "left", "h":
		ctl.Rotate(-keyRotateStep, 0)
	case "right", "l":
		ctl.Rotate(keyRotateStep, 0)
	case "up", "k":
		ctl.Rotate(0, -keyRotateStep)
	case "down", "j":
		ctl.Rotate(0, keyRotateStep)
	case "+", "=":
		ctl.Dolly(dollyStep)
	case "-", "_":
		ctl.Dolly(1 / dollyStep)
	case "r":
		ctl.Reset()
		m.scene.UpdateLabels()
	}

	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	ctl := m.scene.Controls

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		ctl.Dolly(dollyStep)
		return
	case tea.MouseButtonWheelDown:
		ctl.Dolly(1 / dollyStep)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.lastMouseX, m.lastMouseY = msg.X, msg.Y
		}
	case tea.MouseActionMotion:
		if !m.dragging {
			return
		}
		// A full canvas height of drag is one full turn. Cells are
		// two pixels tall.
		_, rows := m.canvasSize()
		heightPx := float64(rows * 2)
		dx := float64(msg.X - m.lastMouseX)
		dy := float64(msg.Y-m.lastMouseY) * 2
		ctl.Rotate(-2*math.Pi*dx/heightPx, -2*math.Pi*dy/heightPx)
		m.lastMouseX, m.lastMouseY = msg.X, msg.Y
	case tea.MouseActionRelease:
		m.dragging = false
	}
}

// cycleFocus steps through "no focus" and each body in catalog order.
func (m *Model) cycleFocus(step int) {
	n := len(m.scene.Bodies) + 1
	m.view.Focus = (m.view.Focus+1+step+n)%n - 1
	if b := m.focused(); b != nil {
		m.log.Debug("focus %s", b.Name())
	}
}

func (m Model) focused() *scene.Body {
	if m.view.Focus < 0 || m.view.Focus >= len(m.scene.Bodies) {
		return nil
	}
	return m.scene.Bodies[m.view.Focus]
}

// canvasSize returns the scene area in cells.
func (m Model) canvasSize() (cols, rows int) {
	cols = m.width
	rows = m.height - headerRows - hudRows - footerRows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	cols, rows := m.canvasSize()
	canvas := render.Render(m.scene, cols, rows, m.view)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(StyledCanvas(canvas))
	b.WriteString(m.renderHUD())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	title := renderGradient(" ls-orrery ")
	return title + muted.Render(fmt.Sprintf(" v%s · %d bodies", version.Version, len(m.scene.Bodies)))
}

func (m Model) renderHUD() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pausedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Bold(true)

	b.WriteString(" ")
	if f := m.focused(); f != nil {
		b.WriteString(headerStyle.Render("◆ " + f.Name()))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" orbit %.0f · angle %.0f°", f.OrbitRadius, astro.RadToDeg(astro.NormalizeAngle(f.OrbitAngle)))))
		if l := m.scene.LabelFor(m.view.Focus); l != nil && !l.InViewport(m.scene.Viewport()) {
			b.WriteString(pausedStyle.Render(" off-screen"))
		}
	} else {
		b.WriteString(headerStyle.Render("☉ free camera"))
	}

	b.WriteString("  ")
	b.WriteString(dimStyle.Render("t="))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.1fs", m.elapsed)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Speed:"))
	b.WriteString(valueStyle.Render(formatTimeScale(m.timeScale)))
	if m.paused {
		b.WriteString(" ")
		b.WriteString(pausedStyle.Render("PAUSED"))
	}
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Dist:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f", m.scene.Controls.Distance())))
	theta, phi := m.scene.Controls.Angles()
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Cam:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f°/%.0f°", astro.RadToDeg(astro.NormalizeAngle(theta)), astro.RadToDeg(phi))))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("FPS:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.fps)))

	return b.String()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	help := "drag/arrows: orbit | +/-/wheel: zoom | r: reset | space: pause | [/]: speed | n/N: focus | L: labels | t: stars | o: rings | q: quit"
	return " " + dimStyle.Render(help)
}

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func clampTimeScale(s float64) float64 {
	return math.Max(MinTimeScale, math.Min(MaxTimeScale, s))
}

func formatTimeScale(s float64) string {
	if s >= 1 {
		return fmt.Sprintf("x%g", s)
	}
	return fmt.Sprintf("x1/%g", 1/s)
}
