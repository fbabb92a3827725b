//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/qmdfmt"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"fz":  Test.Fuzz,
	"l":   Lint,
	"dog": Bench.Dogfood,
}

// releasePlatforms are the GOOS/GOARCH pairs published on release.
var releasePlatforms = []struct{ goos, goarch string }{
	{"linux", "amd64"},
	{"linux", "arm64"},
	{"darwin", "arm64"},
	{"windows", "amd64"},
}

// fuzzTargets lists every fuzz function with its package.
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/fsutil", "FuzzReplace"},
	{"./pkg/qmdfmt", "FuzzParseLossless"},
}

type (
	Test  st.Namespace
	Bench st.Namespace
)

// Build compiles qmdfmt with version info when its sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/qmdfmt")
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Lint runs gofmt, go vet and golangci-lint. Fixes are applied unless CI is
// set.
func Lint() error {
	unformatted, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if unformatted != "" {
		return fmt.Errorf("unformatted files:\n%s", unformatted)
	}
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}

	args := []string{"run", "./..."}
	if os.Getenv("CI") == "" {
		args = append(args, "--fix")
	}
	return sh.RunV("golangci-lint", args...)
}

// Gate runs everything CI requires before a merge.
func Gate() error {
	st.SerialDeps(Lint, Build, Test.Default, ModTidy, Cross)
	fmt.Println("✓ gate passed")
	return nil
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if before != after {
		return errors.New("go.mod or go.sum is not tidy")
	}
	return nil
}

// Cross builds the binary for every release platform.
func Cross() error {
	for _, p := range releasePlatforms {
		env := map[string]string{"GOOS": p.goos, "GOARCH": p.goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, "./cmd/qmdfmt"); err != nil {
			return fmt.Errorf("build %s/%s: %w", p.goos, p.goarch, err)
		}
	}
	return nil
}

// Default runs all tests with race detection and writes coverage.out.
func (Test) Default() error {
	n := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race",
		"-p", n,
		"-parallel", n,
		"-coverprofile=coverage.out",
		"-covermode=atomic",
		"./...",
	)
}

// Fuzz runs each fuzz target for STAVE_FUZZ_TIME (default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("STAVE_FUZZ_TIME"), "30s")
	for _, ft := range fuzzTargets {
		fmt.Printf("fuzzing %s.%s for %s\n", ft.pkg, ft.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run", "^$", "-fuzz", "^"+ft.name+"$", "-fuzztime", fuzzTime, ft.pkg); err != nil {
			return fmt.Errorf("fuzz %s: %w", ft.name, err)
		}
	}
	return nil
}

// Default runs the package benchmarks.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", "./pkg/...")
}

// Dogfood formats STAVE_CORPUS (default ".") in report mode with verification
// and prints the wall time. Unformatted files are listed, not failed.
func (Bench) Dogfood() error {
	st.Deps(Build)
	corpus := cmp.Or(os.Getenv("STAVE_CORPUS"), ".")
	if _, err := os.Stat(corpus); err != nil {
		return fmt.Errorf("corpus: %w", err)
	}

	start := time.Now()
	if err := sh.RunV(binary, "format", "--verify", "--output", "text", "--color", "never", corpus); err != nil {
		return fmt.Errorf("qmdfmt: %w", err)
	}
	fmt.Printf("✓ %s formatted in %s\n", corpus, time.Since(start).Round(time.Millisecond))
	return nil
}

func readModFiles() (string, error) {
	var sb strings.Builder
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", err
		}
		sb.Write(data)
	}
	return sb.String(), nil
}

// ldflags injects version, commit and build date into main.
func ldflags() string {
	version := cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(git("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}

func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
