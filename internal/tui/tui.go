// Package tui provides a Bubble Tea terminal user interface for artwork-pages.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/handiism/artwork-pages/internal/build"
	"github.com/handiism/artwork-pages/internal/config"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	artworkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateBuilding
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   build.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	result    *build.Result
	// artworkNames is the manager's summary line per scanned artwork.
	artworkNames []string
	started   time.Time
	elapsed   time.Duration
	err       error

	// Build context
	ctx    context.Context
	cancel context.CancelFunc

	manager *build.Manager
	events  chan build.ProgressEvent

	// Build progress
	scanned int32
	written int32
	total   int32

	// Options
	dryRun       bool
	skipExisting bool
	markdown     bool
	verbose      bool

	width  int
	height int
}

// NewModel creates a new TUI model. Options start from settings; a nil
// settings value means defaults.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "/path/to/collection"
	ti.SetValue(settings.Root)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:        StateInput,
		textInput:    ti,
		spinner:      sp,
		progress:     prog,
		settings:     settings,
		logs:         make([]LogEntry, 0),
		ctx:          ctx,
		cancel:       cancel,
		dryRun:       settings.DryRun,
		skipExisting: settings.SkipExisting(),
		markdown:     settings.DescriptionFormat == "markdown",
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// BuildDoneMsg is sent when the build finishes.
	BuildDoneMsg struct {
		Result *build.Result
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateBuilding {
				m.cancel()
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				next, cmd := m.startBuild()
				return next, cmd
			}

		case "ctrl+n", "ctrl+s", "ctrl+t", "ctrl+o":
			// Option toggles never reach the text input.
			if m.state == StateInput {
				m = m.toggle(msg.String())
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				return m.reset(), textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case BuildDoneMsg:
		m = m.drainEvents()
		m.elapsed = time.Since(m.started)
		if m.manager != nil {
			m.scanned, m.written, m.total = m.manager.GetProgress()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
			m.result = msg.Result
			if m.manager != nil {
				m.artworkNames = m.manager.GetArtworkNames()
			}
		}

	case TickMsg:
		if m.manager != nil && m.state == StateBuilding {
			m = m.drainEvents()
			m.scanned, m.written, m.total = m.manager.GetProgress()
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) toggle(key string) Model {
	switch key {
	case "ctrl+n":
		m.dryRun = !m.dryRun
	case "ctrl+s":
		m.skipExisting = !m.skipExisting
	case "ctrl+t":
		m.markdown = !m.markdown
	case "ctrl+o":
		m.verbose = !m.verbose
	}
	return m
}

// buildSettings returns the settings for a build with the current options.
func (m Model) buildSettings() *config.Settings {
	settings := *m.settings
	settings.Root = strings.TrimSpace(m.textInput.Value())
	settings.DryRun = m.dryRun
	settings.HTMLPolicy = config.PolicyOverwrite
	if m.skipExisting {
		settings.HTMLPolicy = config.PolicySkip
	}
	settings.DescriptionFormat = "text"
	if m.markdown {
		settings.DescriptionFormat = "markdown"
	}
	return &settings
}

func (m Model) startBuild() (Model, tea.Cmd) {
	settings := m.buildSettings()
	if err := settings.Validate(); err != nil {
		m.state = StateError
		m.err = err
		return m, nil
	}

	events := make(chan build.ProgressEvent, 256)
	m.events = events
	m.manager = build.NewManager(settings, func(event build.ProgressEvent) {
		// Events are dropped while the buffer is full.
		select {
		case events <- event:
		default:
		}
	})
	m.state = StateBuilding
	m.started = time.Now()

	manager, ctx := m.manager, m.ctx
	run := func() tea.Msg {
		result, err := manager.Build(ctx)
		return BuildDoneMsg{Result: result, Err: err}
	}

	return m, tea.Batch(run, m.spinner.Tick, m.tickProgress())
}

func (m Model) reset() Model {
	m.state = StateInput
	m.logs = nil
	m.result = nil
	m.artworkNames = nil
	m.err = nil
	m.scanned, m.written, m.total = 0, 0, 0
	m.manager = nil
	m.events = nil
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.Focus()
	return m
}

// drainEvents moves pending build events into the log.
func (m Model) drainEvents() Model {
	if m.events == nil {
		return m
	}
	for {
		select {
		case event := <-m.events:
			m = m.appendLog(event)
		default:
			return m
		}
	}
}

func (m Model) appendLog(event build.ProgressEvent) Model {
	// Filter verbose messages if not in verbose mode
	if event.Level == build.LevelVerbose && !m.verbose {
		return m
	}
	m.logs = append(m.logs, LogEntry{
		Message: event.Message,
		Level:   event.Level,
	})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
	return m
}

// percent counts scanning and writing as two halves of the build.
func (m Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.scanned+m.written) / float64(2*m.total)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Artwork Pages"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Build HTML pages and content.json from artwork folders"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateBuilding:
		b.WriteString(m.viewBuilding())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Collection root:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Dry run, write nothing (ctrl+n)\n", checkbox(m.dryRun)))
	b.WriteString(fmt.Sprintf("  %s Skip existing pages (ctrl+s)\n", checkbox(m.skipExisting)))
	b.WriteString(fmt.Sprintf("  %s Markdown descriptions (ctrl+t)\n", checkbox(m.markdown)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+o)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Artworks directory: %s", m.buildSettings().ArtworksPath())))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewBuilding() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Building pages..."))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Scanned: %d/%d | Written: %d/%d",
		m.scanned, m.total, m.written, m.total,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	if m.result == nil {
		return b.String()
	}

	heading := "Build Complete!"
	if m.result.DryRun {
		heading = "Dry Run Complete!"
	}

	manifestLine := "Manifest: not written"
	if m.result.ManifestPath != "" {
		manifestLine = "Manifest: " + m.result.ManifestPath
	}

	box := boxStyle.Render(fmt.Sprintf(
		"%s\n\n"+
			"Artworks: %d\n"+
			"Pages: %d\n"+
			"Skipped: %d\n"+
			"%s\n"+
			"Took: %s",
		heading,
		len(m.result.Artworks),
		len(m.result.Pages),
		len(m.result.Skipped),
		manifestLine,
		strings.TrimSpace(humanize.RelTime(m.started, m.started.Add(m.elapsed), "", "")),
	))
	b.WriteString(box)
	b.WriteString("\n\n")

	for i, name := range m.artworkNames {
		if i == maxLogs {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more", len(m.artworkNames)-maxLogs)))
			b.WriteString("\n")
			break
		}
		b.WriteString(artworkStyle.Render(fmt.Sprintf("  • %s", name)))
		if i < len(m.result.Artworks) {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %s", m.result.Artworks[i].Folder)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case build.LevelError:
			style = errorStyle
			prefix = "✗"
		case build.LevelWarning:
			style = warningStyle
			prefix = "!"
		case build.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case build.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: build • ctrl+n: dry run • ctrl+s: skip existing • ctrl+t: markdown • ctrl+o: verbose • esc: quit"
	case StateBuilding:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new build • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	m := NewModel(settings)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
