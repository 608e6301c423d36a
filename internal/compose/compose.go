// Package compose wraps the container engine's compose subcommand for
// the lifecycle operations dit dispatches: build, up, down, restart
// and exec. It also reads the compose file directly to discover
// service names, so commands can validate a service before handing it
// to the engine.
package compose

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Canonical long flags for the compose lifecycle.
const (
	FlagBuild         = "--build"
	FlagDetach        = "--detach"
	FlagForceRecreate = "--force-recreate"
	FlagRemoveOrphans = "--remove-orphans"
	FlagVolumes       = "--volumes"
)

// composeFileNames are probed in order when no file is configured.
var composeFileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// Runner invokes "<engine> compose ..." inside one project directory.
type Runner struct {
	bin       string
	file      string
	extraArgs []string
	dir       string
}

// NewRunner returns a runner using the given engine binary (e.g.
// "docker"). file may be empty, in which case the engine's own compose
// file discovery applies. extraArgs are inserted after "compose" on
// every invocation.
func NewRunner(bin, file string, extraArgs []string, dir string) *Runner {
	if bin == "" {
		bin = "docker"
	}
	return &Runner{bin: bin, file: file, extraArgs: extraArgs, dir: dir}
}

func (r *Runner) composeArgs(args ...string) []string {
	out := []string{"compose"}
	if r.file != "" {
		out = append(out, "-f", r.file)
	}
	out = append(out, r.extraArgs...)
	return append(out, args...)
}

// run streams the compose invocation to the terminal.
func (r *Runner) run(args ...string) error {
	cmd := exec.Command(r.bin, r.composeArgs(args...)...)
	cmd.Dir = r.dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Up starts services with the given long flags.
func (r *Runner) Up(flags []string, services ...string) error {
	args := append([]string{"up"}, flags...)
	return r.run(append(args, services...)...)
}

// Down stops the project, optionally removing volumes.
func (r *Runner) Down(volumes bool) error {
	args := []string{"down"}
	if volumes {
		args = append(args, FlagVolumes)
	}
	return r.run(args...)
}

func (r *Runner) Restart(services ...string) error {
	return r.run(append([]string{"restart"}, services...)...)
}

func (r *Runner) Build(services ...string) error {
	return r.run(append([]string{"build"}, services...)...)
}

// Exec runs a command inside a running service container.
func (r *Runner) Exec(service string, command ...string) error {
	args := append([]string{"exec", service}, command...)
	return r.run(args...)
}

// RunImage runs a one-off command in a plain image, outside the
// compose project ("global" mode).
func (r *Runner) RunImage(image string, command ...string) error {
	args := append([]string{"run", "--rm", "-it", image}, command...)
	cmd := exec.Command(r.bin, args...)
	cmd.Dir = r.dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// composeFile is the subset of the compose schema we read.
type composeFile struct {
	Services map[string]yaml.Node `yaml:"services"`
}

// File returns the compose file path in use, probing the project
// directory when none was configured.
func (r *Runner) File() (string, error) {
	if r.file != "" {
		return r.file, nil
	}
	for _, name := range composeFileNames {
		path := filepath.Join(r.dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no compose file found in %s", r.dir)
}

// Services lists the service names defined in the compose file,
// sorted.
func (r *Runner) Services() ([]string, error) {
	path, err := r.File()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var cf composeFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	services := make([]string, 0, len(cf.Services))
	for name := range cf.Services {
		services = append(services, name)
	}
	sort.Strings(services)
	return services, nil
}

// HasService reports whether the compose file defines the service. A
// missing or unparseable compose file reports false with the error.
func (r *Runner) HasService(name string) (bool, error) {
	services, err := r.Services()
	if err != nil {
		return false, err
	}
	for _, s := range services {
		if s == name {
			return true, nil
		}
	}
	return false, nil
}
