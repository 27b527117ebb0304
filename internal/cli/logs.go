package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/issuedeck/internal/config"
	"github.com/five82/issuedeck/internal/logtail"
)

func newLogsCommand(g *globalOptions) *cobra.Command {
	var (
		lines int
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the issuedeck log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			tail, err := logtail.Read(cfg.LogPath, lines)
			if err != nil {
				return err
			}
			if !raw {
				tail = logtail.FormatLines(tail, true)
			}
			out := cmd.OutOrStdout()
			for _, line := range tail {
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print JSON lines unformatted")
	return cmd
}
