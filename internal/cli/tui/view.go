package tui

import (
	"fmt"
	"strings"

	"github.com/haskel/mlpipe/internal/platform"
)

const maxLogLines = 15

// View renders the dashboard
func (m Model) View() string {
	var b strings.Builder

	title := "mlpipe — pipeline watch"
	if m.loading {
		title += " (refreshing…)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n\n")
	}

	b.WriteString(sectionHeaderStyle.Render("Training job"))
	b.WriteString("\n")
	if m.job != nil {
		b.WriteString(fmt.Sprintf("  %s  %s\n", m.job.Name, renderJobState(m.job.State)))
		if m.job.ArtifactURI != "" {
			b.WriteString(fmt.Sprintf("  artifact: %s\n", m.job.ArtifactURI))
		}
		if m.job.FailureReason != "" {
			b.WriteString(errStyle.Render("  " + m.job.FailureReason))
			b.WriteString("\n")
		}
	} else if m.config.JobName != "" {
		b.WriteString(fmt.Sprintf("  %s  (waiting for status)\n", m.config.JobName))
	} else {
		b.WriteString("  none\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionHeaderStyle.Render("Endpoint"))
	b.WriteString("\n")
	if m.endpoint != nil {
		b.WriteString(fmt.Sprintf("  %s  %s\n", m.endpoint.Name, renderEndpointState(m.endpoint.State)))
		if m.endpoint.FailureReason != "" {
			b.WriteString(errStyle.Render("  " + m.endpoint.FailureReason))
			b.WriteString("\n")
		}
	} else if m.config.EndpointName != "" {
		b.WriteString(fmt.Sprintf("  %s  (waiting for status)\n", m.config.EndpointName))
	} else {
		b.WriteString("  none\n")
	}
	b.WriteString("\n")

	if len(m.logs) > 0 {
		b.WriteString(sectionHeaderStyle.Render("Logs"))
		b.WriteString("\n")

		logs := m.logs
		if len(logs) > maxLogLines {
			logs = logs[len(logs)-maxLogLines:]
		}
		for _, line := range logs {
			b.WriteString(logStyle.Render("  " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if !m.lastUpdated.IsZero() {
		b.WriteString(helpStyle.Render(fmt.Sprintf("updated %s", m.lastUpdated.Format("15:04:05"))))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("r: refresh • q: quit"))

	return b.String()
}

func renderJobState(s platform.JobState) string {
	switch s {
	case platform.JobCompleted:
		return stateReadyStyle.Render(string(s))
	case platform.JobFailed:
		return stateFailedStyle.Render(string(s))
	default:
		return statePendingStyle.Render(string(s))
	}
}

func renderEndpointState(s platform.EndpointState) string {
	switch s {
	case platform.EndpointInService:
		return stateReadyStyle.Render(string(s))
	case platform.EndpointFailed:
		return stateFailedStyle.Render(string(s))
	default:
		return statePendingStyle.Render(string(s))
	}
}
