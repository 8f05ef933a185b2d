// Package tui is the interactive dashboard: today's intake against the daily
// limit, the recent trend, time-of-day averages, the sweet-spot matrix and the
// raw log.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/forms"
	"github.com/julianstephens/nicolog/internal/stats"
	"github.com/julianstephens/nicolog/internal/storage"
	"github.com/julianstephens/nicolog/internal/tui/components/loglist"
	"github.com/julianstephens/nicolog/internal/tui/components/matrix"
	"github.com/julianstephens/nicolog/internal/tui/components/times"
	"github.com/julianstephens/nicolog/internal/tui/components/today"
	"github.com/julianstephens/nicolog/internal/tui/components/trend"
)

// refreshInterval is how often the dashboard reloads from storage
const refreshInterval = time.Minute

// TickMsg triggers a reload
type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type Model struct {
	store         *storage.LogStore
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	todayModel    today.Model
	trendModel    trend.Model
	timesModel    times.Model
	matrixModel   matrix.Model
	logList       loglist.Model
	form          *huh.Form
	checkInForm   *forms.CheckInFormModel
	settingsForm  *forms.SettingsFormModel
	status        string
	statusErr     bool
	quitting      bool
	width         int
	height        int
}

func NewModel(store *storage.LogStore) Model {
	m := Model{
		store:       store,
		state:       constants.StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		todayModel:  today.New(),
		trendModel:  trend.New(0, 0),
		timesModel:  times.New(0, 0),
		matrixModel: matrix.New(0, 0),
		logList:     loglist.New(0, 0),
	}
	m.refresh()
	return m
}

// refresh reloads records and settings and recomputes every view
func (m *Model) refresh() {
	records := m.store.LoadAll()
	settings := m.store.LoadSettings()
	date := m.store.Today()

	day := stats.Daily(date, records)
	m.todayModel.SetData(today.Data{
		Day:      day,
		Progress: stats.LimitProgress(day, settings),
		Settings: settings,
		Streak:   stats.Streak(records, date),
		Latest:   m.store.MostRecentToday(),
		Location: m.store.Location(),
	})
	m.trendModel.SetSeries(stats.Trend(records, date, constants.DefaultTrendDays), settings.DailyMgLimit)
	m.timesModel.SetStats(stats.ByTimeOfDay(records))
	m.matrixModel.SetMatrix(stats.SweetSpot(records))
	m.logList.SetRecords(records, m.store.Location())
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// contentHeight is what is left for a tab after the tab bar, status and help lines
func (m Model) contentHeight() int {
	return max(m.height-4, 1)
}

func (m *Model) resize() {
	h := m.contentHeight()
	m.todayModel.SetSize(m.width, h)
	m.trendModel.SetSize(m.width-4, h-2)
	m.timesModel.SetSize(m.width-4, h-2)
	m.matrixModel.SetSize(m.width-4, h-2)
	m.logList.SetSize(m.width-4, h-2)
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateCheckIn, constants.StateEditSettings:
		return []key.Binding{m.keys.Cancel}
	}
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.CheckIn, m.keys.Settings}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}
	actions := []key.Binding{m.keys.Refresh, m.keys.CheckIn, m.keys.Settings}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Run starts the dashboard on the alternate screen
func Run(store *storage.LogStore) error {
	_, err := tea.NewProgram(NewModel(store), tea.WithAltScreen()).Run()
	return err
}
