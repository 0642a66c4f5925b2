package tui

import (
	"time"

	"github.com/haskel/mlpipe/internal/platform"
)

// Config holds TUI configuration
type Config struct {
	BaseURL         string
	Token           string
	JobName         string
	EndpointName    string
	RefreshInterval time.Duration
}

// Model represents the TUI state
type Model struct {
	config Config

	// Data from the platform API
	job      *platform.TrainingJob
	endpoint *platform.Endpoint
	logs     []string
	logNext  int

	// UI state
	width       int
	height      int
	loading     bool
	err         error
	lastUpdated time.Time
}

// NewModel creates the initial TUI model
func NewModel(cfg Config) Model {
	return Model{
		config:  cfg,
		loading: true,
	}
}
