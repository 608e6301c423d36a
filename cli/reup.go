package cli

import (
	"github.com/abnegate/dit/internal/splat"
	"github.com/spf13/cobra"
)

var reupSpec = splat.MustSpec(
	splat.Flag{Letter: 'v', Long: "volumes", Effect: effVolumes},
	splat.Flag{Letter: 'b', Long: "build", Effect: effBuild},
	splat.Flag{Letter: 'd', Long: "detach", Effect: effDetach},
)

var reupCmd = &cobra.Command{
	Use:     "reup [-vbd] [services...]",
	Aliases: []string{"ru"},
	Short:   "Stop and restart the project's containers",
	Long: `Cycle the compose project: down, then up. -v removes volumes on
the down leg; -b and -d apply to the up leg.`,

	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := reupSpec.Normalize(args)
		if err != nil {
			return err
		}
		p, err := loadProject()
		if err != nil {
			return err
		}
		if err := p.compose.Down(res.Has(effVolumes)); err != nil {
			return err
		}
		return p.compose.Up(effectFlags(res), res.Positional...)
	},
}
