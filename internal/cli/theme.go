package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/octoscope/pkg/prefs"
)

// themeCommand creates the theme command with subcommands.
func (c *CLI) themeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the color theme",
		Long: `Show or change the color theme (light or dark).

The theme is stored in prefs.toml next to the config file and applies to the
interactive search and all command output. Inside the interactive search,
ctrl+t toggles it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.printTheme()
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.printTheme()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Set the theme",
		ValidArgs: []string{string(prefs.Light), string(prefs.Dark)},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := prefs.ParseTheme(args[0])
			if err != nil {
				return err
			}
			if err := c.prefs.SetTheme(t); err != nil {
				return err
			}
			setTheme(t)
			printSuccess("Theme set to %s", t)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.prefs.Toggle()
			if err != nil {
				return err
			}
			setTheme(t)
			printSuccess("Theme set to %s", t)
			return nil
		},
	})

	return cmd
}

func (c *CLI) printTheme() {
	printKeyValue("Theme", string(c.prefs.Theme()))
	printDetail("%s", c.prefs.Path())
}
