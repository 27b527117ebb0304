package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/issuedeck/internal/app"
)

// runTUIFunc launches the interactive UI; tests replace it.
var runTUIFunc = app.Run

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	prefsPath  string
}

func (g *globalOptions) appOptions(command string) app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		PrefsPath:  g.prefsPath,
		Command:    command,
	}
}

// NewRootCommand creates the issuedeck command tree. Without a subcommand it
// starts the TUI.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "issuedeck",
		Short: "Browse GitHub issue search results and keep favorites",
		Long: `issuedeck pages through a GitHub issue search, lets you filter the
loaded issues by title, and remembers the issues you mark as favorites.

Run without arguments to open the terminal UI.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUIFunc(cmd.Context(), opts.appOptions("tui"))
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/issuedeck/config.toml)")
	root.PersistentFlags().StringVar(&opts.prefsPath, "prefs", "", "preferences file (default ~/.config/issuedeck/prefs.toml)")

	root.AddCommand(
		newListCommand(opts),
		newFavCommand(opts),
		newLogsCommand(opts),
		newConfigCommand(opts),
	)
	return root
}
