package loglist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/models"
)

type Item struct {
	Record   models.LogRecord
	Location *time.Location
}

func (i Item) Title() string {
	if i.Record.IsCheckInOnly() {
		return "Check-in"
	}
	return fmt.Sprintf("%s · %g %s", i.Record.Source, i.Record.Amount, i.Record.UnitType)
}

func (i Item) Description() string {
	loc := i.Location
	if loc == nil {
		loc = time.Local
	}
	parts := []string{
		i.Record.Date + " " + i.Record.Timestamp.In(loc).Format(constants.TimeFormat),
		fmt.Sprintf("%.1f mg", i.Record.EstimatedMg),
	}
	if i.Record.FocusLevel != nil {
		parts = append(parts, fmt.Sprintf("focus %d", *i.Record.FocusLevel))
	}
	if i.Record.AnxietyLevel != nil {
		parts = append(parts, fmt.Sprintf("anxiety %d", *i.Record.AnxietyLevel))
	}
	if i.Record.Reason != nil {
		parts = append(parts, *i.Record.Reason)
	}
	return strings.Join(parts, " | ")
}

func (i Item) FilterValue() string {
	return string(i.Record.Source) + " " + i.Record.Date
}

type Model struct {
	list list.Model
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Logs"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model
	return Model{list: l}
}

// SetRecords shows records newest first
func (m *Model) SetRecords(records []models.LogRecord, loc *time.Location) {
	items := make([]list.Item, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		items = append(items, Item{Record: records[i], Location: loc})
	}
	m.list.SetItems(items)
}

// Filtering reports whether the filter input has focus
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No entries yet.\n  Run 'nicolog log' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
