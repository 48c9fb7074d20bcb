package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/octoscope/pkg/config"
	"github.com/matzehuels/octoscope/pkg/errors"
	"github.com/matzehuels/octoscope/pkg/prefs"
)

// stdout receives command output and stderr receives errors and warnings.
// Tests swap them for buffers.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// =============================================================================
// Color Palette
// =============================================================================

type palette struct {
	primary   lipgloss.Color // primary actions, titles
	success   lipgloss.Color
	warning   lipgloss.Color
	danger    lipgloss.Color
	link      lipgloss.Color
	text      lipgloss.Color // values
	secondary lipgloss.Color
	muted     lipgloss.Color
}

var (
	darkPalette = palette{
		primary:   lipgloss.Color("36"),  // Teal
		success:   lipgloss.Color("35"),  // Green
		warning:   lipgloss.Color("220"), // Amber
		danger:    lipgloss.Color("167"), // Soft red
		link:      lipgloss.Color("75"),  // Light blue
		text:      lipgloss.Color("255"), // Bright white
		secondary: lipgloss.Color("245"), // Gray
		muted:     lipgloss.Color("240"), // Dim gray
	}

	lightPalette = palette{
		primary:   lipgloss.Color("30"),  // Dark teal
		success:   lipgloss.Color("28"),  // Forest green
		warning:   lipgloss.Color("130"), // Brown-orange
		danger:    lipgloss.Color("160"), // Red
		link:      lipgloss.Color("25"),  // Blue
		text:      lipgloss.Color("235"), // Near black
		secondary: lipgloss.Color("242"), // Gray
		muted:     lipgloss.Color("247"), // Light gray
	}
)

func paletteFor(t prefs.Theme) palette {
	if t == prefs.Dark {
		return darkPalette
	}
	return lightPalette
}

// =============================================================================
// Styles
// =============================================================================

// styles is the full style set for one theme.
type styles struct {
	Title     lipgloss.Style
	Highlight lipgloss.Style
	Link      lipgloss.Style
	Dim       lipgloss.Style
	Value     lipgloss.Style
	Number    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Key       lipgloss.Style
	Header    lipgloss.Style
	Border    lipgloss.Style
	Selected  lipgloss.Style
	Spinner   lipgloss.Style
}

func newStyles(t prefs.Theme) styles {
	p := paletteFor(t)
	return styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		Highlight: lipgloss.NewStyle().Foreground(p.primary),
		Link:      lipgloss.NewStyle().Foreground(p.link).Underline(true),
		Dim:       lipgloss.NewStyle().Foreground(p.muted),
		Value:     lipgloss.NewStyle().Foreground(p.text),
		Number:    lipgloss.NewStyle().Foreground(p.primary),
		Success:   lipgloss.NewStyle().Foreground(p.success),
		Warning:   lipgloss.NewStyle().Foreground(p.warning),
		Error:     lipgloss.NewStyle().Foreground(p.danger),
		Key:       lipgloss.NewStyle().Foreground(p.secondary).Width(12),
		Header:    lipgloss.NewStyle().Foreground(p.secondary).Bold(true),
		Border:    lipgloss.NewStyle().Foreground(p.muted),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		Spinner:   lipgloss.NewStyle().Foreground(p.primary),
	}
}

// ui is the style set used by command output, set from preferences at startup.
var ui = newStyles(prefs.DefaultTheme)

func setTheme(t prefs.Theme) {
	ui = newStyles(t)
}

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconStar    = "★"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, ui.Success.Render(iconSuccess)+" "+msg)
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stderr, ui.Error.Render(iconError)+" "+msg)
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stderr, ui.Warning.Render(iconWarning)+" "+ui.Warning.Render(msg))
}

func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, ui.Dim.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, "  "+ui.Dim.Render(msg))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, ui.Key.Render(key)+" "+ui.Value.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, ui.Dim.Render(iconArrow+" "+description+":")+" "+ui.Link.UnsetUnderline().Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

// ReportError prints the user-facing message for err. Anonymous users who
// hit the rate limit also get a hint about GITHUB_TOKEN.
func (c *CLI) ReportError(err error) {
	printError("%s", errors.UserMessage(err))
	if reset, ok := errors.ResetTime(err); ok {
		c.Logger.Debug("rate limit window", "resets_at", reset.Local().Format(time.Kitchen))
	}
	if errors.Is(err, errors.ErrCodeRateLimited) && c.cfg.Token == "" {
		printWarning("Set %s to raise the limit from 60 to 5,000 requests per hour", config.EnvToken)
	}
}
