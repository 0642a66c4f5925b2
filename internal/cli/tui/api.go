package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haskel/mlpipe/internal/platform"
	"github.com/haskel/mlpipe/internal/platform/rest"
)

// Messages for tea.Cmd
type jobMsg struct {
	job *platform.TrainingJob
	err error
}

type endpointMsg struct {
	endpoint *platform.Endpoint
	err      error
}

type logsMsg struct {
	lines []string
	next  int
}

type tickMsg time.Time

func newClient(cfg Config) *rest.Client {
	return rest.NewClient(cfg.BaseURL, cfg.Token)
}

func fetchJob(cfg Config) tea.Cmd {
	if cfg.JobName == "" {
		return nil
	}
	return func() tea.Msg {
		job, err := newClient(cfg).GetTrainingJob(context.Background(), cfg.JobName)
		return jobMsg{job: job, err: err}
	}
}

func fetchEndpoint(cfg Config) tea.Cmd {
	if cfg.EndpointName == "" {
		return nil
	}
	return func() tea.Msg {
		ep, err := newClient(cfg).GetEndpoint(context.Background(), cfg.EndpointName)
		return endpointMsg{endpoint: ep, err: err}
	}
}

func fetchLogs(cfg Config, from int) tea.Cmd {
	if cfg.JobName == "" {
		return nil
	}
	return func() tea.Msg {
		lines, next, err := newClient(cfg).TrainingLogs(context.Background(), cfg.JobName, from)
		if err != nil {
			// Logs are best-effort in the dashboard too.
			return logsMsg{next: from}
		}
		return logsMsg{lines: lines, next: next}
	}
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
