package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchJob(m.config),
		fetchEndpoint(m.config),
		fetchLogs(m.config, 0),
		tick(m.config.RefreshInterval),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case jobMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.job = msg.job
			m.lastUpdated = time.Now()
		}
		return m, nil

	case endpointMsg:
		if msg.err == nil {
			m.endpoint = msg.endpoint
			m.lastUpdated = time.Now()
		}
		return m, nil

	case logsMsg:
		m.logs = append(m.logs, msg.lines...)
		m.logNext = msg.next
		return m, nil

	case tickMsg:
		m.loading = true
		return m, tea.Batch(
			fetchJob(m.config),
			fetchEndpoint(m.config),
			fetchLogs(m.config, m.logNext),
			tick(m.config.RefreshInterval),
		)
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		// Manual refresh
		m.loading = true
		return m, tea.Batch(
			fetchJob(m.config),
			fetchEndpoint(m.config),
			fetchLogs(m.config, m.logNext),
		)
	}

	return m, nil
}
