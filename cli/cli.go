package cli

import (
	"errors"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dit",
	Short: "dit dispatches docker, git and package-manager operations",
	Long: `dit turns short, combinable flags into verbose operations against
docker compose, git and your package managers, and remembers which
branches you worked on in each project so you can swap back to them
by name, by "last", or by relative index.`,
	SilenceUsage: true,
}

// Execute runs the root command and maps failures to exit codes.
// External collaborator failures propagate their own exit status;
// everything else exits 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

func init() {
	// Container lifecycle commands
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(reupCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(buildCmd)

	// Branch management commands
	rootCmd.AddCommand(swapCmd)
	rootCmd.AddCommand(branchCmd)

	// Git passthrough commands
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(diffCmd)

	// Project commands
	rootCmd.AddCommand(reinstallCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(infoCmd)
}
