package cli

import (
	"fmt"

	"github.com/abnegate/dit/internal/colors"
	"github.com/abnegate/dit/internal/pkgmgr"
	"github.com/spf13/cobra"
)

var reinstallCmd = &cobra.Command{
	Use:     "reinstall",
	Aliases: []string{"ri"},
	Short:   "Run the project's package-manager installs",
	Long: `Detect the project's package managers by their manifest files
(composer.json, package.json, Gemfile, requirements.txt, Package.swift,
build.gradle) and run each install command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}

		managers := pkgmgr.Detect(p.workDir)
		if len(managers) == 0 {
			fmt.Println(colors.Dim("No package manifests found."))
			return nil
		}
		for _, m := range managers {
			fmt.Printf("%s Installing with %s\n", colors.Cyan("→"), colors.Bold(m.Name))
			if err := m.Install(p.workDir); err != nil {
				return err
			}
		}
		return nil
	},
}
