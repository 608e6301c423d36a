package cli

import (
	"github.com/abnegate/dit/internal/compose"
	"github.com/abnegate/dit/internal/splat"
	"github.com/spf13/cobra"
)

// Effects shared by the container lifecycle commands.
const (
	effBuild    splat.Effect = "build"
	effDetach   splat.Effect = "detach"
	effRecreate splat.Effect = "recreate"
	effCleanup  splat.Effect = "cleanup"
	effVolumes  splat.Effect = "volumes"
)

// effectFlags maps activated effects to compose long flags, in a fixed
// order so invocations are reproducible.
func effectFlags(res *splat.Result) []string {
	var flags []string
	if res.Has(effBuild) {
		flags = append(flags, compose.FlagBuild)
	}
	if res.Has(effDetach) {
		flags = append(flags, compose.FlagDetach)
	}
	if res.Has(effRecreate) {
		flags = append(flags, compose.FlagForceRecreate)
	}
	if res.Has(effCleanup) {
		flags = append(flags, compose.FlagRemoveOrphans)
	}
	return flags
}

var upSpec = splat.MustSpec(
	splat.Flag{Letter: 'b', Long: "build", Effect: effBuild},
	splat.Flag{Letter: 'd', Long: "detach", Effect: effDetach},
	splat.Flag{Letter: 'r', Long: "recreate", Effect: effRecreate},
	splat.Flag{Letter: 'c', Long: "cleanup", Effect: effCleanup},
)

var upCmd = &cobra.Command{
	Use:     "up [-bdrc] [services...]",
	Aliases: []string{"u"},
	Short:   "Start the project's containers",
	Long: `Start the compose project. Short flags splat in any order and
combination: "dit up -bd" is "dit up --build --detach". Tokens that
are not recognized flags are passed through as service names.`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := upSpec.Normalize(args)
		if err != nil {
			return err
		}
		p, err := loadProject()
		if err != nil {
			return err
		}
		return p.compose.Up(effectFlags(res), res.Positional...)
	},
}
