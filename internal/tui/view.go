package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/nicolog/internal/constants"
)

var tabTitles = []string{"Today", "Trend", "Times", "Matrix", "Logs"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateToday:
		content = m.todayModel.View()
	case constants.StateTrend:
		content = docStyle.Render(m.trendModel.View())
	case constants.StateTimes:
		content = docStyle.Render(m.timesModel.View())
	case constants.StateMatrix:
		content = docStyle.Render(m.matrixModel.View())
	case constants.StateLogs:
		content = docStyle.Render(m.logList.View())
	case constants.StateCheckIn, constants.StateEditSettings:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if int(active) >= constants.TabCount {
		active = m.previousState
	}

	var tabs []string
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return dangerStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}
