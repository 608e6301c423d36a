package pkgmgr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatalf("touch %s: %v", name, err)
		}
	}
}

func names(managers []Manager) []string {
	var out []string
	for _, m := range managers {
		out = append(out, m.Name)
	}
	return out
}

func TestDetectNothing(t *testing.T) {
	if got := Detect(t.TempDir()); len(got) != 0 {
		t.Errorf("Detect on empty dir = %v, want none", names(got))
	}
}

func TestDetectNpmVsYarn(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "package.json")
	if got := names(Detect(dir)); !cmp.Equal([]string{"npm"}, got) {
		t.Errorf("package.json alone detected %v, want [npm]", got)
	}

	touch(t, dir, "yarn.lock")
	if got := names(Detect(dir)); !cmp.Equal([]string{"yarn"}, got) {
		t.Errorf("package.json + yarn.lock detected %v, want [yarn]", got)
	}
}

func TestDetectMultipleManifests(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "composer.json", "package.json", "Gemfile", "requirements.txt")

	want := []string{"composer", "npm", "bundler", "pip"}
	if diff := cmp.Diff(want, names(Detect(dir))); diff != "" {
		t.Errorf("detected managers (-want +got):\n%s", diff)
	}
}

func TestDetectGradlePrefersWrapper(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "build.gradle")
	managers := Detect(dir)
	if len(managers) != 1 || managers[0].Command[0] != "gradle" {
		t.Fatalf("build.gradle detected %v", managers)
	}

	touch(t, dir, "gradlew")
	managers = Detect(dir)
	if len(managers) != 1 || managers[0].Command[0] != "./gradlew" {
		t.Fatalf("build.gradle + gradlew detected %v", managers)
	}
}

func TestDetectSwiftAndKotlinGradle(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Package.swift", "build.gradle.kts")

	want := []string{"swiftpm", "gradle"}
	if diff := cmp.Diff(want, names(Detect(dir))); diff != "" {
		t.Errorf("detected managers (-want +got):\n%s", diff)
	}
}
