// Package pkgmgr detects which package managers a project uses by the
// manifest files present, and runs their install commands.
package pkgmgr

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Manager is one detected package manager and its install invocation.
type Manager struct {
	Name    string
	Command []string
}

func exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

// Detect returns the package managers whose manifests exist in dir, in
// a fixed order. A package.json project installs with yarn when a
// yarn.lock is present, otherwise npm.
func Detect(dir string) []Manager {
	var managers []Manager

	if exists(dir, "composer.json") {
		managers = append(managers, Manager{Name: "composer", Command: []string{"composer", "install"}})
	}
	if exists(dir, "package.json") {
		if exists(dir, "yarn.lock") {
			managers = append(managers, Manager{Name: "yarn", Command: []string{"yarn", "install"}})
		} else {
			managers = append(managers, Manager{Name: "npm", Command: []string{"npm", "install"}})
		}
	}
	if exists(dir, "Gemfile") {
		managers = append(managers, Manager{Name: "bundler", Command: []string{"bundle", "install"}})
	}
	if exists(dir, "requirements.txt") {
		managers = append(managers, Manager{Name: "pip", Command: []string{"pip3", "install", "-r", "requirements.txt"}})
	}
	if exists(dir, "Package.swift") {
		managers = append(managers, Manager{Name: "swiftpm", Command: []string{"swift", "package", "resolve"}})
	}
	if exists(dir, "build.gradle") || exists(dir, "build.gradle.kts") {
		if exists(dir, "gradlew") {
			managers = append(managers, Manager{Name: "gradle", Command: []string{"./gradlew", "build"}})
		} else {
			managers = append(managers, Manager{Name: "gradle", Command: []string{"gradle", "build"}})
		}
	}

	return managers
}

// Install runs the manager's install command inside dir, streaming
// output to the terminal.
func (m Manager) Install(dir string) error {
	cmd := exec.Command(m.Command[0], m.Command[1:]...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s install: %w", m.Name, err)
	}
	return nil
}

// InstallAll detects and runs every applicable installer. The first
// failure stops the sequence.
func InstallAll(dir string) ([]Manager, error) {
	managers := Detect(dir)
	for _, m := range managers {
		if err := m.Install(dir); err != nil {
			return managers, err
		}
	}
	return managers, nil
}
