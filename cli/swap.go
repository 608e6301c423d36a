package cli

import (
	"fmt"
	"strconv"

	"github.com/abnegate/dit/internal/history"
	"github.com/abnegate/dit/internal/pkgmgr"
	"github.com/abnegate/dit/internal/splat"
	"github.com/abnegate/dit/internal/swap"
	"github.com/spf13/cobra"
)

const (
	effStash   splat.Effect = "stash"
	effApply   splat.Effect = "apply"
	effPull    splat.Effect = "pull"
	effNoUp    splat.Effect = "no-up"
	effInstall splat.Effect = "install"
)

// --pull, --no-up and --install deliberately have no short letters:
// -n is reserved for the "last -n N" offset, and -p/-i were never
// splattable in this tool's vocabulary.
var swapSpec = splat.MustSpec(
	splat.Flag{Letter: 'v', Long: "volumes", Effect: effVolumes},
	splat.Flag{Letter: 's', Long: "stash", Effect: effStash},
	splat.Flag{Letter: 'a', Long: "apply", Effect: effApply},
	splat.Flag{Long: "pull", Effect: effPull},
	splat.Flag{Long: "no-up", Effect: effNoUp},
	splat.Flag{Long: "install", Effect: effInstall},
)

var swapCmd = &cobra.Command{
	Use:     "swap <branch|last> [-vsa] [--pull] [--no-up] [--install]",
	Aliases: []string{"s"},
	Short:   "Switch branches and cycle the containers",
	Long: `Switch the project to another branch, then rebuild and restart its
containers. The target may be a branch name, "last" for the branch you
were on before the current one, or "last -n N" for the branch N swaps
back.

  -s/--stash    stash before checkout
  -a/--apply    pop the stash after checkout
  -v/--volumes  remove volumes when cycling containers
  --pull        pull after checkout
  --install     run package-manager installs after switching
  --no-up       skip the container cycle`,

	DisableFlagParsing: true,
	RunE:               runSwap,
}

// extractOffset pulls a "-n N" pair out of the argument list before
// flag splatting, since -n is not part of swap's alphabet. It returns
// the remaining arguments and the parsed offset (0 when absent). Only
// offsets in [1, history length] are addressable, so anything below 1
// is rejected here, before any external action runs.
func extractOffset(args []string) ([]string, int, error) {
	for i, arg := range args {
		if arg != "-n" {
			continue
		}
		if i+1 >= len(args) {
			return nil, 0, fmt.Errorf("%w: -n requires a number", history.ErrInvalidOffset)
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %q is not a number", history.ErrInvalidOffset, args[i+1])
		}
		if n < 1 {
			return nil, 0, fmt.Errorf("%w: %d", history.ErrInvalidOffset, n)
		}
		rest := append(append([]string{}, args[:i]...), args[i+2:]...)
		return rest, n, nil
	}
	return args, 0, nil
}

func runSwap(cmd *cobra.Command, args []string) error {
	args, offset, err := extractOffset(args)
	if err != nil {
		return err
	}

	res, err := swapSpec.Normalize(args)
	if err != nil {
		return err
	}
	if len(res.Positional) == 0 {
		return fmt.Errorf("swap requires a branch name or \"last\"")
	}
	target := res.Positional[0]
	if offset > 0 && target != "last" {
		return fmt.Errorf("%w: -n only applies to \"last\"", history.ErrInvalidOffset)
	}

	p, err := loadProject()
	if err != nil {
		return err
	}
	if err := p.requireRepo(); err != nil {
		return err
	}

	swapper := &swap.Swapper{
		ProjectKey: p.key,
		Git:        p.git,
		Compose:    p.compose,
		History:    &stampedLedger{Store: p.ledger},
		Install: func() error {
			_, err := pkgmgr.InstallAll(p.workDir)
			return err
		},
	}

	return swapper.Swap(target, swap.Options{
		Stash:   res.Has(effStash),
		Apply:   res.Has(effApply),
		Pull:    res.Has(effPull),
		Install: res.Has(effInstall),
		NoUp:    res.Has(effNoUp),
		Volumes: res.Has(effVolumes),
		Offset:  offset,
	})
}
