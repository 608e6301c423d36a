package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Thin git passthroughs. These exist so the whole workflow stays on
// one tool; git's own output and exit status pass through unchanged.

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the current branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		if err := p.requireRepo(); err != nil {
			return err
		}
		return p.git.Push()
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull the current branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		if err := p.requireRepo(); err != nil {
			return err
		}
		return p.git.Pull()
	},
}

var commitCmd = &cobra.Command{
	Use:   "commit <message...>",
	Short: "Stage everything and commit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("commit requires a message")
		}
		p, err := loadProject()
		if err != nil {
			return err
		}
		if err := p.requireRepo(); err != nil {
			return err
		}
		return p.git.Commit(strings.Join(args, " "))
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show unstaged changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		if err := p.requireRepo(); err != nil {
			return err
		}
		return p.git.Diff()
	},
}
