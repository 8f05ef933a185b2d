package today

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/stats"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(16)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	overStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			MarginTop(1)
)

// Data is everything the Today tab shows
type Data struct {
	Day      stats.DailyStats
	Progress stats.Progress
	Settings models.Settings
	Streak   int
	Latest   *models.LogRecord
	Location *time.Location
}

type Model struct {
	data   Data
	bar    progress.Model
	width  int
	height int
}

func New() Model {
	return Model{
		bar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m *Model) SetData(data Data) {
	m.data = data
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.bar.Width = min(max(width-8, 10), 60)
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func level(avg *float64) string {
	if avg == nil {
		return "–"
	}
	return fmt.Sprintf("%.1f", *avg)
}

func (m Model) View() string {
	d := m.data

	ratio := 0.0
	if d.Progress.LimitMg > 0 {
		ratio = min(d.Progress.Percent/100, 1)
	}
	intake := fmt.Sprintf("%.1f / %g mg (%.0f%%)", d.Progress.TotalMg, d.Progress.LimitMg, d.Progress.Percent)
	if d.Progress.Over {
		intake = overStyle.Render(intake + "  over limit")
	}

	events := fmt.Sprintf("%d / %d", d.Day.EventCount, d.Settings.DailyEventLimit)
	if d.Settings.DailyEventLimit > 0 && d.Day.EventCount > d.Settings.DailyEventLimit {
		events = overStyle.Render(events)
	}

	streak := fmt.Sprintf("%d day", d.Streak)
	if d.Streak != 1 {
		streak += "s"
	}

	lines := []string{
		titleStyle.Render("Today · " + d.Day.Date),
		row("Intake", intake),
		m.bar.ViewAs(ratio),
		"",
		row("Events", events),
		row("Avg focus", level(d.Day.AvgFocus)),
		row("Avg anxiety", level(d.Day.AvgAnxiety)),
		row("Streak", streak),
	}

	if d.Latest != nil {
		lines = append(lines, row("Last entry", describe(*d.Latest, d.Location)))
		if !d.Latest.HasCheckIn() {
			lines = append(lines, hintStyle.Render("No check-in yet for your last entry. Press 'c' to add one."))
		}
	} else {
		lines = append(lines, hintStyle.Render("Nothing logged today. Run 'nicolog log' to add an entry."))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
			lipgloss.NewStyle().Padding(1, 2).Render(content))
	}
	return content
}

func describe(r models.LogRecord, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	at := r.Timestamp.In(loc).Format(constants.TimeFormat)
	if r.IsCheckInOnly() {
		return at + " check-in"
	}
	return fmt.Sprintf("%s %s, %g %s, %.1f mg", at, r.Source, r.Amount, r.UnitType, r.EstimatedMg)
}
