package matrix

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/stats"
)

var (
	bestStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true).
			MarginTop(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			MarginTop(1)
)

type Model struct {
	table  table.Model
	matrix stats.Matrix
}

func New(width, height int) Model {
	columns := []table.Column{{Title: "Dose (mg)", Width: 10}}
	for _, tod := range models.TimesOfDay {
		columns = append(columns, table.Column{Title: string(tod), Width: 11})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithWidth(width),
		table.WithHeight(height),
	)
	return Model{table: t}
}

// Rows renders one row per dose bucket; empty cells show a dot
func Rows(m stats.Matrix) []table.Row {
	rows := make([]table.Row, 0, len(m.Doses))
	for i, dose := range m.Doses {
		row := table.Row{dose.Label}
		for j := range m.Times {
			cell := m.Cells[i][j]
			if !cell.Populated() {
				row = append(row, "·")
				continue
			}
			row = append(row, fmt.Sprintf("%.0f (n=%d)", cell.Metric, cell.Count))
		}
		rows = append(rows, row)
	}
	return rows
}

func (m *Model) SetMatrix(matrix stats.Matrix) {
	m.matrix = matrix
	m.table.SetRows(Rows(matrix))
}

func (m *Model) SetSize(width, height int) {
	m.table.SetWidth(width)
	m.table.SetHeight(max(height-4, 3))
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	footer := hintStyle.Render("Focus relative to anxiety, 0-100. Only entries with both levels count.")
	if best, ok := m.matrix.Best(); ok {
		footer = lipgloss.JoinVertical(lipgloss.Left,
			bestStyle.Render(fmt.Sprintf("Sweet spot: %s mg in the %s (%.0f, %d entries)", best.Dose, best.TimeOfDay, best.Metric, best.Count)),
			footer,
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.table.View(), footer)
}
