package cli

import (
	"github.com/spf13/cobra"
)

var restartCmd = &cobra.Command{
	Use:   "restart [services...]",
	Short: "Restart the project's containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		return p.compose.Restart(args...)
	},
}

var buildCmd = &cobra.Command{
	Use:     "build [services...]",
	Aliases: []string{"b"},
	Short:   "Build the project's container images",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		return p.compose.Build(args...)
	},
}
