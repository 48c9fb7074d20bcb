// Package cli implements the octoscope command-line interface.
//
// Running octoscope without a subcommand opens the interactive search. The
// subcommands expose the same operations for scripts:
//   - profile: show a user's profile and most recent repositories
//   - repos: list repositories, one page or all of them
//   - suggest: list usernames matching a partial query
//   - theme: show or change the color theme
//   - config: show the effective configuration
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/matzehuels/octoscope/internal/metrics"
	"github.com/matzehuels/octoscope/pkg/buildinfo"
	"github.com/matzehuels/octoscope/pkg/config"
	"github.com/matzehuels/octoscope/pkg/github"
	"github.com/matzehuels/octoscope/pkg/prefs"
	"github.com/matzehuels/octoscope/pkg/search"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "octoscope"

	// suggestionBurst is how many suggestion lookups may run back to back
	// before suggestions_per_minute throttling applies.
	suggestionBurst = 3
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg   config.Config
	prefs *prefs.Store

	metrics *metrics.Metrics

	// Persistent flags.
	configPath  string
	prefsPath   string
	apiURL      string
	pageSize    int
	metricsFile string
	logFile     string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Without a subcommand the root runs the interactive search.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "octoscope [username]",
		Short: "Octoscope explores GitHub users from the terminal",
		Long: `Octoscope looks up GitHub users and browses their public repositories,
most recently updated first, with username suggestions as you type.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: c.setup,
		RunE:              c.runTUI,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/octoscope/config.toml)")
	flags.StringVar(&c.prefsPath, "prefs", "", "preferences file (default $XDG_CONFIG_HOME/octoscope/prefs.toml)")
	flags.StringVar(&c.apiURL, "api-url", "", "GitHub API URL (overrides config and "+config.EnvAPIURL+")")
	flags.IntVar(&c.pageSize, "page-size", 0, "repositories per page, 1-100 (overrides config)")
	flags.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	flags.StringVar(&c.logFile, "log-file", "", "log file for the interactive search (default: logs discarded)")

	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.profileCommand())
	root.AddCommand(c.reposCommand())
	root.AddCommand(c.suggestCommand())
	root.AddCommand(c.themeCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration and preferences before any command runs.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))

	cfg, err := config.Load(c.configPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("api-url") {
			cfg.APIURL = c.apiURL
		}
		if cmd.Flags().Changed("page-size") {
			cfg.PageSize = c.pageSize
		}
	})
	if err != nil {
		return err
	}
	c.cfg = cfg

	store, err := prefs.Load(c.prefsPath)
	if err != nil {
		return err
	}
	c.prefs = store
	setTheme(store.Theme())

	if c.metricsFile != "" && c.metrics == nil {
		c.metrics = metrics.New(appName)
		c.metrics.Install()
	}

	c.Logger.Debug("configured", "api", cfg.APIURL, "authenticated", cfg.Token != "", "page_size", cfg.PageSize)
	return nil
}

// Close flushes metrics, if enabled. It is called once after the command
// tree has run, whether or not the command failed.
func (c *CLI) Close() error {
	if c.metrics == nil || c.metricsFile == "" {
		return nil
	}
	if err := c.metrics.WriteFile(c.metricsFile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	c.Logger.Debug("metrics written", "path", c.metricsFile)
	return nil
}

// =============================================================================
// Factories
// =============================================================================

func (c *CLI) newClient() *github.Client {
	return github.NewClient(github.Options{
		BaseURL: c.cfg.APIURL,
		Token:   c.cfg.Token,
		Timeout: c.cfg.Timeout,
	})
}

func (c *CLI) newSuggester(client *github.Client) *github.Suggester {
	var limiter *rate.Limiter
	if n := c.cfg.SuggestionsPerMinute; n > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), min(n, suggestionBurst))
	}
	return github.NewSuggester(client, github.SuggesterOptions{
		Limit:   c.cfg.SuggestionLimit,
		Limiter: limiter,
		Logger:  c.Logger,
	})
}

func (c *CLI) newSession(client search.Fetcher, suggester search.SuggestionSource, r search.Renderer) *search.Session {
	return search.New(client, suggester, r, search.Options{
		PageSize: c.cfg.PageSize,
		Debounce: c.cfg.Debounce,
		Logger:   c.Logger,
	})
}

// openLogFile redirects the logger to path for the lifetime of the returned
// closer. With an empty path, logs are discarded.
func (c *CLI) openLogFile(path string) (func(), error) {
	if path == "" {
		c.Logger.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	c.Logger.SetOutput(f)
	return func() { f.Close() }, nil
}

// commandContext bounds one-shot commands.
func commandContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
