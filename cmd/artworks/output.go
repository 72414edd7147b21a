package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/handiism/artwork-pages/internal/build"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	verboseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

// eventPrinter writes build progress events, one per line. Events may
// arrive from several scanner goroutines at once.
type eventPrinter struct {
	out      io.Writer
	verbose  bool
	colorize bool
	mu       sync.Mutex
}

func newEventPrinter(out io.Writer, verbose bool) *eventPrinter {
	return &eventPrinter{
		out:      out,
		verbose:  verbose,
		colorize: shouldColorize(out),
	}
}

func (p *eventPrinter) print(event build.ProgressEvent) {
	if event.Level == build.LevelVerbose && !p.verbose {
		return
	}

	prefix, style := levelPrefix(event.Level)
	line := prefix + " " + event.Message
	if p.colorize {
		line = style.Render(line)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, line)
}

func (p *eventPrinter) header(title string) {
	if p.colorize {
		title = headerStyle.Render(title)
	}
	fmt.Fprintln(p.out, title)
	p.rule()
}

func (p *eventPrinter) rule() {
	line := strings.Repeat("-", 40)
	if p.colorize {
		line = ruleStyle.Render(line)
	}
	fmt.Fprintln(p.out, line)
}

func levelPrefix(level build.ProgressLevel) (string, lipgloss.Style) {
	switch level {
	case build.LevelError:
		return "[error]", errorStyle
	case build.LevelWarning:
		return "[warn] ", warningStyle
	case build.LevelSuccess:
		return "[ok]   ", successStyle
	case build.LevelInfo:
		return "[info] ", infoStyle
	default:
		return "       ", verboseStyle
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
