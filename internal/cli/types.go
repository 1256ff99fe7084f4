package cli

import (
	"github.com/spf13/cobra"

	"github.com/voidshard/citylayout"
)

func (c *CLI) typesCommand() *cobra.Command {
	var config string

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the district types a config defines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(config)
			if err != nil {
				return err
			}
			cat, err := citylayout.NewCatalog(cfg.Types)
			if err != nil {
				return err
			}
			printTypes(cmd.OutOrStdout(), cat)
			return nil
		},
	}

	cmd.Flags().StringVarP(&config, "config", "c", "", "toml config file (default: built in district types)")
	return cmd
}
