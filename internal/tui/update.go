package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/forms"
	"github.com/julianstephens/nicolog/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case TickMsg:
		if m.form == nil {
			m.refresh()
		}
		return m, tick()
	}

	if m.state == constants.StateCheckIn || m.state == constants.StateEditSettings {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !(m.state == constants.StateLogs && m.logList.Filtering()) {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.state = constants.SessionState((int(m.state) + 1) % constants.TabCount)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.state = constants.SessionState((int(m.state) - 1 + constants.TabCount) % constants.TabCount)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			m.setStatus("Refreshed", false)
			return m, nil
		case key.Matches(msg, m.keys.CheckIn):
			return m.startCheckIn()
		case key.Matches(msg, m.keys.Settings):
			return m.startSettings()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateTrend:
		m.trendModel, cmd = m.trendModel.Update(msg)
	case constants.StateTimes:
		m.timesModel, cmd = m.timesModel.Update(msg)
	case constants.StateMatrix:
		m.matrixModel, cmd = m.matrixModel.Update(msg)
	case constants.StateLogs:
		m.logList, cmd = m.logList.Update(msg)
	}
	return m, cmd
}

func (m Model) startCheckIn() (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.checkInForm = &forms.CheckInFormModel{}
	m.form = forms.NewCheckInForm(m.checkInForm)
	m.state = constants.StateCheckIn
	return m, m.form.Init()
}

func (m Model) startSettings() (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.settingsForm = forms.NewSettingsFormModel(m.store.LoadSettings())
	m.form = forms.NewSettingsForm(m.settingsForm)
	m.state = constants.StateEditSettings
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Cancel) {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == constants.StateCheckIn {
			m.submitCheckIn()
		} else {
			m.submitSettings()
		}
		m.closeForm()
		m.refresh()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.checkInForm = nil
	m.settingsForm = nil
	m.state = m.previousState
}

func (m *Model) submitCheckIn() {
	record, created, err := m.store.CheckIn(m.checkInForm.CheckIn())
	if err != nil {
		logger.Error("Check-in failed", "error", err)
		m.setStatus(fmt.Sprintf("Check-in failed: %v", err), true)
		return
	}
	if created {
		m.setStatus("Saved a new check-in", false)
	} else {
		m.setStatus(fmt.Sprintf("Added check-in to your %s entry", record.Source), false)
	}
}

func (m *Model) submitSettings() {
	settings, err := m.settingsForm.Settings()
	if err == nil {
		err = m.store.SaveSettings(settings)
	}
	if err != nil {
		logger.Error("Saving settings failed", "error", err)
		m.setStatus(fmt.Sprintf("Settings not saved: %v", err), true)
		return
	}
	m.setStatus("Settings saved", false)
}
