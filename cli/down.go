package cli

import (
	"github.com/abnegate/dit/internal/splat"
	"github.com/spf13/cobra"
)

var downSpec = splat.MustSpec(
	splat.Flag{Letter: 'v', Long: "volumes", Effect: effVolumes},
)

var downCmd = &cobra.Command{
	Use:     "down [-v]",
	Aliases: []string{"d"},
	Short:   "Stop the project's containers",
	Long:    "Stop the compose project. -v/--volumes also removes its volumes.",

	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := downSpec.Normalize(args)
		if err != nil {
			return err
		}
		p, err := loadProject()
		if err != nil {
			return err
		}
		return p.compose.Down(res.Has(effVolumes))
	},
}
