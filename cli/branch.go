package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/abnegate/dit/internal/colors"
	"github.com/abnegate/dit/internal/history"
	"github.com/abnegate/dit/internal/store"
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:     "branch",
	Aliases: []string{"br"},
	Short:   "Show the current branch and this project's branch history",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		if err := p.requireRepo(); err != nil {
			return err
		}

		current, err := p.git.CurrentBranch()
		if err != nil {
			return err
		}
		fmt.Printf("On branch %s\n", colors.Bold(current))

		branches, err := p.ledger.Branches(p.key)
		if err != nil {
			if errors.Is(err, history.ErrStorageUnavailable) {
				return err
			}
			branches = nil
		}
		if len(branches) == 0 {
			fmt.Println(colors.Dim("No branch history recorded for this project yet."))
			return nil
		}

		// Visit timestamps are garnish; the listing works without them.
		var meta *store.DB
		if path, err := store.DefaultPath(); err == nil {
			if db, err := store.Open(path); err == nil {
				meta = db
				defer meta.Close()
			}
		}

		fmt.Printf("\nVisited branches (most recent last):\n")
		for _, b := range branches {
			marker := "  "
			if b == current {
				marker = colors.Green("* ")
			}
			line := fmt.Sprintf("%s%s", marker, b)
			if meta != nil {
				if at, err := meta.LastVisit(p.key, b); err == nil {
					line += colors.Gray(fmt.Sprintf("  (%s)", at.Local().Format(time.DateTime)))
				}
			}
			fmt.Println(line)
		}
		return nil
	},
}
