package times

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/stats"
)

type Model struct {
	table table.Model
}

func New(width, height int) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Time of day", Width: 12},
			{Title: "Check-ins", Width: 10},
			{Title: "Avg focus", Width: 10},
			{Title: "Avg anxiety", Width: 12},
		}),
		table.WithFocused(true),
		table.WithWidth(width),
		table.WithHeight(height),
	)
	return Model{table: t}
}

// Rows renders the buckets in display order, blank buckets included
func Rows(buckets map[models.TimeOfDay]stats.TimeBucketStats) []table.Row {
	rows := make([]table.Row, 0, len(models.TimesOfDay))
	for _, tod := range models.TimesOfDay {
		b, ok := buckets[tod]
		if !ok {
			rows = append(rows, table.Row{string(tod), "0", "–", "–"})
			continue
		}
		rows = append(rows, table.Row{string(tod), strconv.Itoa(b.Count), avg(b.AvgFocus), avg(b.AvgAnxiety)})
	}
	return rows
}

func avg(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.1f", *v)
}

func (m *Model) SetStats(buckets map[models.TimeOfDay]stats.TimeBucketStats) {
	m.table.SetRows(Rows(buckets))
}

func (m *Model) SetSize(width, height int) {
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.table.View()
}
