package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/issuedeck/internal/config"
)

func newConfigCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Config prints the configuration issuedeck would run with: file values,
then environment overrides, then defaults for anything left unset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			data, err := cfg.Encode()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
