package cli

import (
	"fmt"
	"strings"

	"github.com/abnegate/dit/internal/colors"
	"github.com/abnegate/dit/internal/pkgmgr"
	"github.com/abnegate/dit/internal/store"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show what dit knows about this project",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}

		fmt.Printf("Project:  %s\n", colors.Bold(p.key))
		fmt.Printf("ID:       %s\n", colors.Gray(store.ShortProjectID(p.key)))

		if p.git.IsRepo() {
			if branch, err := p.git.CurrentBranch(); err == nil {
				fmt.Printf("Branch:   %s\n", branch)
			}
			if desc, err := p.git.Describe(); err == nil {
				fmt.Printf("Version:  %s\n", desc)
			}
			if n, err := p.ledger.Count(p.key); err == nil {
				fmt.Printf("History:  %d visited branch(es)\n", n)
			}
		} else {
			fmt.Println(colors.Dim("Not a git repository."))
		}

		if services, err := p.compose.Services(); err == nil {
			fmt.Printf("Services: %s\n", strings.Join(services, ", "))
		}

		managers := pkgmgr.Detect(p.workDir)
		if len(managers) > 0 {
			var names []string
			for _, m := range managers {
				names = append(names, m.Name)
			}
			fmt.Printf("Packages: %s\n", strings.Join(names, ", "))
		}
		return nil
	},
}
