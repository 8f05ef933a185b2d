package trend

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/nicolog/internal/stats"
)

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(7)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))

	overStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// labelWidth is the space taken by the date and total columns around a bar
const labelWidth = 7 + 18

type Model struct {
	viewport viewport.Model
	series   []stats.DayTotal
	limitMg  float64
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.series) == 0 {
		return "No data yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetSeries replaces the chart data. Bars for days over limitMg are drawn in red.
func (m *Model) SetSeries(series []stats.DayTotal, limitMg float64) {
	m.series = series
	m.limitMg = limitMg
	m.Render()
}

func (m *Model) Render() {
	peak := m.limitMg
	for _, d := range m.series {
		peak = max(peak, d.TotalMg)
	}

	barMax := max(m.width-labelWidth, 10)

	var b strings.Builder
	for _, d := range m.series {
		n := 0
		if peak > 0 {
			n = int(d.TotalMg / peak * float64(barMax))
		}
		style := barStyle
		if m.limitMg > 0 && d.TotalMg > m.limitMg {
			style = overStyle
		}

		label := d.Date
		if len(label) == 10 {
			label = label[5:]
		}

		fmt.Fprintf(&b, "%s %s %s\n",
			dateStyle.Render(label),
			style.Render(strings.Repeat("█", n)),
			totalStyle.Render(fmt.Sprintf("%.1f mg (%d)", d.TotalMg, d.EventCount)),
		)
	}
	m.viewport.SetContent(b.String())
}
