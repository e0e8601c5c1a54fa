package main

import (
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/jointpanel/pkg/link"
	"github.com/gwillem/jointpanel/pkg/panel"
	"github.com/gwillem/jointpanel/pkg/robot"
)

type PanelCommand struct {
	Port string  `short:"p" long:"port" description:"Serial port to connect to on start (default from config)"`
	Step float64 `long:"step" description:"Slider step in degrees (default from config)"`
}

const (
	headerHeight = 4  // title, status, port line, blank
	sliderHeight = 6  // one row per joint + blank + help
	legendHeight = 2  // legend row + blank
	footerHeight = 7  // log box height
	maxLogs      = 5  // number of log messages to show
	borderSize   = 2  // chart border
	barWidth     = 40 // slider bar width in cells
	coarseStep   = 10 // degrees moved by pgup/pgdown
)

// Joint colors - distinct colors for each joint
var jointColors = map[robot.Joint]string{
	robot.Joint1: "196", // red
	robot.Joint2: "226", // yellow
	robot.Joint3: "46",  // green
	robot.Joint4: "51",  // cyan
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	onlineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	offlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

type panelModel struct {
	ctrl     *panel.Controller
	chart    *streamlinechart.Model
	ports    []string // ports offered for connection
	portIdx  int      // index into ports
	selected int      // index into ctrl.Joints()
	width    int      // terminal width
	height   int      // terminal height
	logs     []string // last N log messages
	quitting bool
}

func (m *panelModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

type logMsg string

func waitForLog(ctrl *panel.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *panelModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 12 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - sliderHeight - legendHeight - footerHeight - borderSize
	if height < 6 {
		height = 6
	}
	return width, height
}

func (m *panelModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

// valueRange returns the command value range spanned by all joints.
func valueRange(ctrl *panel.Controller) (lo, hi float64) {
	lo, hi = math.MaxFloat64, -math.MaxFloat64
	for _, jc := range ctrl.Joints() {
		mp := jc.Mapping()
		lo = math.Min(lo, float64(mp.MinValue))
		hi = math.Max(hi, float64(mp.MaxValue))
	}
	return lo, hi
}

func newPanelModel(ctrl *panel.Controller, ports []string, current string) panelModel {
	lo, hi := valueRange(ctrl)
	chart := streamlinechart.New(80, 12,
		streamlinechart.WithYRange(lo, hi),
	)

	// Set up data set styles for each joint
	for _, jc := range ctrl.Joints() {
		color := jointColors[jc.Joint()]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(jc.Joint().String(), runes.ThinLineStyle, style)
	}

	m := panelModel{
		ctrl:  ctrl,
		chart: &chart,
		ports: ports,
	}
	for i, p := range ports {
		if p == current {
			m.portIdx = i
		}
	}
	m.pushChart()
	return m
}

func (m panelModel) Init() tea.Cmd {
	return waitForLog(m.ctrl)
}

func (m panelModel) selectedJoint() *panel.JointControl {
	joints := m.ctrl.Joints()
	if len(joints) == 0 {
		return nil
	}
	return joints[m.selected]
}

func (m panelModel) currentPort() string {
	if len(m.ports) == 0 {
		return ""
	}
	return m.ports[m.portIdx]
}

// moveTo sets the selected joint's slider, bounded to its travel like a
// physical slider, and relays the new value.
func (m *panelModel) moveTo(angle float64) {
	jc := m.selectedJoint()
	if jc == nil {
		return
	}
	maxAngle := jc.Mapping().MaxAngle
	angle = math.Max(0, math.Min(maxAngle, angle))
	// Send errors reach the log box through the controller's log stream.
	jc.OnChange(angle)
	m.pushChart()
}

func (m *panelModel) nudge(delta float64) {
	jc := m.selectedJoint()
	if jc == nil {
		return
	}
	m.moveTo(jc.Position().Angle + delta)
}

func (m *panelModel) pushChart() {
	for _, pos := range m.ctrl.Positions() {
		m.chart.PushDataSet(pos.Joint.String(), float64(pos.Value))
	}
	m.chart.DrawAll()
}

func (m panelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		m.chart.DrawAll()
		return m, nil

	case tea.KeyMsg:
		joints := len(m.ctrl.Joints())
		step := m.ctrl.Step()

		switch key := msg.String(); key {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "tab", "right", "l":
			m.selected = (m.selected + 1) % joints
		case "shift+tab", "left", "h":
			m.selected = (m.selected + joints - 1) % joints
		case "1", "2", "3", "4":
			if n := int(key[0] - '1'); n < joints {
				m.selected = n
			}
		case "up", "k":
			m.nudge(step)
		case "down", "j":
			m.nudge(-step)
		case "pgup":
			m.nudge(coarseStep)
		case "pgdown":
			m.nudge(-coarseStep)
		case "home":
			m.moveTo(0)
		case "end":
			m.moveTo(math.Inf(1))
		case "p":
			if len(m.ports) > 0 {
				m.portIdx = (m.portIdx + 1) % len(m.ports)
			}
		case "P":
			if ports, err := link.ListPorts(); err == nil {
				m.ports = ports
				m.portIdx = 0
			} else {
				m.addLog(err.Error())
			}
		case "c", "enter":
			if port := m.currentPort(); port != "" {
				m.ctrl.Connect(port)
			} else {
				m.addLog("No available serial ports found.")
			}
		case "d":
			m.ctrl.Disconnect()
		case "r":
			m.ctrl.Resync()
			m.pushChart()
		}
		return m, nil

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)
	}

	return m, nil
}

func (m panelModel) View() string {
	if m.quitting {
		return "Joint panel closed.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Finger Joint Panel"))
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n")
	if m.ctrl.Connected() {
		sb.WriteString(onlineStyle.Render(m.ctrl.Status()))
	} else {
		sb.WriteString(offlineStyle.Render(m.ctrl.Status()))
	}
	sb.WriteString("\n")
	sb.WriteString(renderPortLine(m.ports, m.portIdx))
	sb.WriteString("\n\n")

	// Sliders
	for i, jc := range m.ctrl.Joints() {
		sb.WriteString(renderSlider(jc, i == m.selected))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render("tab/1-4 select  ↑/↓ move  pgup/pgdn ±10  home/end  p port  P rescan  c connect  d disconnect  r resync  q quit"))
	sb.WriteString("\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend(m.ctrl))
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Foreground(lipgloss.Color("9")) // bright red
	if m.width > 4 {
		logStyle = logStyle.Width(m.width - 4)
	}

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderPortLine(ports []string, idx int) string {
	if len(ports) == 0 {
		return statusStyle.Render("Port: none found (P to rescan)")
	}
	return fmt.Sprintf("Port: %s %s", selectedStyle.Render(ports[idx]),
		statusStyle.Render(fmt.Sprintf("(%d/%d)", idx+1, len(ports))))
}

// renderSlider draws one joint as a bar whose length follows its angle.
func renderSlider(jc *panel.JointControl, selected bool) string {
	pos := jc.Position()
	frac := pos.Angle / jc.Mapping().MaxAngle
	filled := int(math.Round(frac * barWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}

	color := jointColors[jc.Joint()]
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	bar := barStyle.Render(strings.Repeat("█", filled)) + statusStyle.Render(strings.Repeat("░", barWidth-filled))

	label := fmt.Sprintf("%-8s", fmt.Sprintf("%s: %d", jc.Joint(), pos.Value))
	marker := "  "
	if selected {
		marker = "> "
		label = selectedStyle.Render(label)
	}

	line := fmt.Sprintf("%s%s %s %5.1f°", marker, label, bar, pos.Angle)
	if !pos.Sent {
		line += statusStyle.Render("  (not sent)")
	}
	return line
}

func renderLegend(ctrl *panel.Controller) string {
	var items []string
	for _, jc := range ctrl.Joints() {
		color := jointColors[jc.Joint()]
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		item := colorStyle.Render("━━") + " " + jc.Joint().String()
		items = append(items, item)
	}
	return strings.Join(items, "  ")
}

func (c *PanelCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if c.Step > 0 {
		cfg.Step = c.Step
	}
	port := c.Port
	if port == "" {
		port = cfg.Port
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	ports, err := link.ListPorts()
	if err != nil {
		logger.WithError(err).Warn("port listing failed")
	}
	if port != "" && !slices.Contains(ports, port) {
		ports = append([]string{port}, ports...)
	}

	ctrl, err := panel.NewController(panel.Config{Robot: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if len(ports) == 0 {
		logger.Warn("no available serial ports found")
	}
	if port != "" {
		// Failure is shown in the log box; the panel stays usable for a retry.
		ctrl.Connect(port)
	}

	p := tea.NewProgram(newPanelModel(ctrl, ports, port), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running panel: %v\n", err)
		return err
	}
	return nil
}
