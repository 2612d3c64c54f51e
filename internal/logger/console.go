package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode controls whether console tags are coloured.
type ColorMode string

const (
	// ColorAuto colours output only when writing to a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces ANSI colours, e.g. for CI logs that render them.
	ColorAlways ColorMode = "always"
	// ColorNever disables colours.
	ColorNever ColorMode = "never"
)

// ParseColorMode validates a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// Palette holds the tag colours.
type Palette struct {
	Info       lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Processing lipgloss.Color
	SyncMode   lipgloss.Color
}

// DefaultPalette returns the default tag colours.
func DefaultPalette() Palette {
	return Palette{
		Info:       lipgloss.Color("#06B6D4"), // Cyan
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Processing: lipgloss.Color("#6C7086"), // Medium gray
		SyncMode:   lipgloss.Color("#7C3AED"), // Purple
	}
}

// Console prints severity-tagged lines ("TAG: message") for humans and CI
// logs. It is safe for concurrent use.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	color  bool
	styles map[string]lipgloss.Style
}

// NewConsole creates a console writing to w.
func NewConsole(w io.Writer, mode ColorMode) *Console {
	c := &Console{w: w}

	var renderer *lipgloss.Renderer
	switch mode {
	case ColorAlways:
		renderer = lipgloss.NewRenderer(w)
		renderer.SetColorProfile(termenv.ANSI)
		c.color = true
	case ColorNever:
	default:
		if isTerminal(w) && os.Getenv("NO_COLOR") == "" {
			renderer = lipgloss.NewRenderer(w)
			c.color = renderer.ColorProfile() != termenv.Ascii
		}
	}

	if c.color {
		c.styles = newTagStyles(renderer, DefaultPalette())
	}
	return c
}

func newTagStyles(r *lipgloss.Renderer, p Palette) map[string]lipgloss.Style {
	tag := func(color lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Bold(true).Foreground(color)
	}
	return map[string]lipgloss.Style{
		"INFO":       tag(p.Info),
		"WARNING":    tag(p.Warning),
		"ERROR":      tag(p.Error),
		"SUCCESS":    tag(p.Success),
		"PROCESSING": tag(p.Processing),
		"SYNC MODE":  tag(p.SyncMode),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Colored reports whether tags are rendered with ANSI colours.
func (c *Console) Colored() bool {
	return c.color
}

func (c *Console) print(tag, format string, args ...any) {
	label := tag + ":"
	if c.color {
		label = c.styles[tag].Render(label)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s\n", label, fmt.Sprintf(format, args...))
}

// Info prints an INFO line.
func (c *Console) Info(format string, args ...any) { c.print("INFO", format, args...) }

// Warning prints a WARNING line.
func (c *Console) Warning(format string, args ...any) { c.print("WARNING", format, args...) }

// Error prints an ERROR line.
func (c *Console) Error(format string, args ...any) { c.print("ERROR", format, args...) }

// Success prints a SUCCESS line.
func (c *Console) Success(format string, args ...any) { c.print("SUCCESS", format, args...) }

// Processing prints a PROCESSING line.
func (c *Console) Processing(format string, args ...any) { c.print("PROCESSING", format, args...) }

// SyncMode prints a SYNC MODE line.
func (c *Console) SyncMode(format string, args ...any) { c.print("SYNC MODE", format, args...) }
