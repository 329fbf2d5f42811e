//go:build stave

package main

import (
	"bytes"
	"cmp"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "mdcard"
	mainPkg = "./cmd/mdcard"
)

var binPath = filepath.Join("bin", binary)

var Default = Build

var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"s":   Smoke,
	"fmt": Lint.Fmt,
}

type (
	Test st.Namespace
	Lint st.Namespace
	CI   st.Namespace
)

// Build compiles bin/mdcard when any source changed since the last build.
func Build() error {
	stale, err := target.Dir(binPath, "cmd/", "pkg/", "internal/", "go.mod")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Printf("%s is up to date\n", binPath)
		return nil
	}
	fmt.Printf("Building %s...\n", binary)
	return goCmd("build", "-ldflags", versionFlags(), "-o", binPath, mainPkg)
}

// Install puts mdcard in $GOBIN.
func Install() error {
	return goCmd("install", "-ldflags", versionFlags(), mainPkg)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Smoke pipes a small card grid through the built binary and checks the
// wrapper markup comes back.
func Smoke() error {
	st.Deps(Build)

	sample := strings.Join([]string{
		"::::card-grid",
		":::card",
		"![Logo](logo.png)",
		"",
		"**Docs**",
		":::",
		"::::",
		"",
	}, "\n")

	cmd := exec.Command(binPath, "render", "--format", "html") //nolint:gosec // built above
	cmd.Stdin = strings.NewReader(sample)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("render sample: %w\n%s", err, out)
	}
	for _, want := range []string{`class="card-grid"`, `class="image-container"`, `class="content-container"`} {
		if !bytes.Contains(out, []byte(want)) {
			return fmt.Errorf("smoke output lacks %s:\n%s", want, out)
		}
	}
	fmt.Println("smoke render ok")
	return nil
}

// Default runs the race-enabled suite with coverage through gotestsum.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails")
}

// Verbose is Default with per-test output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose")
}

// Fuzz runs each fuzz target briefly.
func (Test) Fuzz() error {
	targets := map[string]string{
		"FuzzParse":           "./pkg/parser/goldmark",
		"FuzzParseAttributes": "./pkg/parser/goldmark",
	}
	for name, pkg := range targets {
		if err := goCmd("test", "-run", "^$", "-fuzz", "^"+name+"$", "-fuzztime", "20s", pkg); err != nil {
			return err
		}
	}
	return nil
}

func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt rewrites Go files with gofmt.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// Gate runs the checks a pull request must pass. Nothing is rewritten.
func (CI) Gate() error {
	st.SerialDeps(CI.Format, CI.Vet, CI.Lint, Build, Test.Default, Smoke)
	return nil
}

// Format fails when gofmt would change a file.
func (CI) Format() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

func (CI) Vet() error {
	return goCmd("vet", "./...")
}

func (CI) Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

func gotestsum(format string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return goCmd("tool", "gotestsum", "-f", format, "--",
		"-race", "-p", procs, "-parallel", procs,
		"-coverprofile=coverage.out", "-covermode=atomic",
		"./...")
}

func goCmd(args ...string) error {
	return sh.RunV("go", args...)
}

// versionFlags injects the values main reports from `mdcard version`.
func versionFlags() string {
	git := func(args ...string) string {
		out, err := sh.Output("git", args...)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(out)
	}
	return strings.Join([]string{
		"-X main.version=" + cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		"-X main.commit=" + cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		"-X main.date=" + time.Now().UTC().Format(time.RFC3339),
	}, " ")
}
