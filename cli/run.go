package cli

import (
	"fmt"

	"github.com/abnegate/dit/internal/splat"
	"github.com/spf13/cobra"
)

const effGlobal splat.Effect = "global"

// -g consumes the next token as an image name and is therefore never
// part of a splat cluster.
var runSpec = splat.MustSpec(
	splat.Flag{Letter: 'g', Long: "global", Effect: effGlobal, TakesValue: true},
)

var runCmd = &cobra.Command{
	Use:   "run [-g <image>] <service> <command...>",
	Short: "Run a command in a service container or a global image",
	Long: `Run a one-off command. Without -g the command executes in the named
compose service; with -g it executes in a fresh container of the given
image, outside the compose project.`,

	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runSpec.Normalize(args)
		if err != nil {
			return err
		}
		p, err := loadProject()
		if err != nil {
			return err
		}

		if res.Has(effGlobal) {
			if len(res.Positional) == 0 {
				return fmt.Errorf("run -g requires a command")
			}
			return p.compose.RunImage(res.Values[effGlobal], res.Positional...)
		}

		if len(res.Positional) < 2 {
			return fmt.Errorf("run requires a service and a command")
		}
		service, command := res.Positional[0], res.Positional[1:]
		if ok, err := p.compose.HasService(service); err == nil && !ok {
			return fmt.Errorf("unknown service %q", service)
		}
		return p.compose.Exec(service, command...)
	},
}

var shellCmd = &cobra.Command{
	Use:     "shell [-g <image>] [service]",
	Aliases: []string{"sh"},
	Short:   "Open a shell in a service container or a global image",

	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runSpec.Normalize(args)
		if err != nil {
			return err
		}
		p, err := loadProject()
		if err != nil {
			return err
		}

		if res.Has(effGlobal) {
			return p.compose.RunImage(res.Values[effGlobal], "sh")
		}

		service, err := resolveService(p, res.Positional)
		if err != nil {
			return err
		}
		return p.compose.Exec(service, "sh")
	},
}

// resolveService picks the target service: the named one, then the
// configured default, then the only service in the compose file.
func resolveService(p *project, positional []string) (string, error) {
	if len(positional) > 0 {
		service := positional[0]
		if ok, err := p.compose.HasService(service); err == nil && !ok {
			return "", fmt.Errorf("unknown service %q", service)
		}
		return service, nil
	}
	if p.cfg.Compose.DefaultService != "" {
		return p.cfg.Compose.DefaultService, nil
	}
	services, err := p.compose.Services()
	if err == nil && len(services) == 1 {
		return services[0], nil
	}
	return "", fmt.Errorf("shell requires a service name")
}
