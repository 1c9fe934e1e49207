//go:build stave

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

// All runs the complete build pipeline: lint, test, and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles the jobscore-cli, jobscore-bench and jobscore-vocab binaries.
func Build() error {
	st.Deps(Init)
	st.Deps(Build_CLI, Build_Bench, Build_Vocab)
	return nil
}

// Build_CLI compiles the jobscore-cli binary with version information.
func Build_CLI() error {
	st.Deps(Init)
	return buildBinary("jobscore-cli")
}

// Build_Bench compiles the jobscore-bench binary.
func Build_Bench() error {
	st.Deps(Init)
	return buildBinary("jobscore-bench")
}

// Build_Vocab compiles the jobscore-vocab binary.
func Build_Vocab() error {
	st.Deps(Init)
	return buildBinary("jobscore-vocab")
}

// buildBinary builds ./cmd/<name> into bin/<name> when sources changed.
func buildBinary(name string) error {
	out := "bin/" + name
	rebuild, err := target.Glob(out, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Printf("%s is up to date\n", name)
		}
		return nil
	}

	return sh.RunV("go", "build", "-ldflags", buildLdflags(), "-o", out, "./cmd/"+name)
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	date := time.Now().Format(time.RFC3339)

	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version),
		strings.TrimSpace(commit),
		date,
	)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// TestShort runs tests in short mode (skips long-running tests).
func TestShort() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-short", "-race", "./...")
}

// TestVerbose runs tests with verbose output.
func TestVerbose() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "-v", "./...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// LintFix runs golangci-lint with auto-fix enabled.
func LintFix() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code using gofmt and goimports.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if err := sh.Run("goimports", "-w", "."); err != nil {
		return fmt.Errorf("goimports: %w", err)
	}
	return nil
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	artifacts := []string{
		"bin/",
		"coverage.out",
		"coverage.html",
	}
	for _, a := range artifacts {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install builds and installs the binaries to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = gopath + "/bin"
	}

	binaries := []string{"jobscore-cli", "jobscore-bench", "jobscore-vocab"}
	for _, name := range binaries {
		src := "bin/" + name
		dst := bin + "/" + name
		if runtime.GOOS == "windows" {
			dst += ".exe"
		}
		if err := sh.Copy(dst, src); err != nil {
			return fmt.Errorf("installing %s: %w", name, err)
		}
		if st.Verbose() {
			fmt.Printf("Installed %s to %s\n", name, dst)
		}
	}
	return nil
}

// Vocab namespace for vocabulary-related targets.
type Vocab st.Namespace

// Compile converts the JSON vocabulary into the binary .pb form, which loads
// faster for large word indexes.
func (Vocab) Compile() error {
	st.Deps(Build_Vocab)

	src := envOr("JOBSCORE_VOCAB", "testdata/vocab.json")
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return fmt.Errorf("vocabulary not found: %s", src)
	}
	dst := strings.TrimSuffix(src, ".json") + ".pb"

	return sh.RunV("./bin/jobscore-vocab", "-vocab", src, "-out", dst)
}

// Bench namespace for benchmark-related targets.
type Bench st.Namespace

// Run evaluates the model against the labelled postings corpus.
// Requires model.onnx and testdata/postings.csv to exist.
func (Bench) Run() error {
	st.Deps(Build_Bench)
	return sh.RunV("./bin/jobscore-bench", benchArgs()...)
}

// Sweep runs a threshold sweep to find the best fraud threshold.
func (Bench) Sweep() error {
	st.Deps(Build_Bench)
	return sh.RunV("./bin/jobscore-bench", append(benchArgs(), "-sweep")...)
}

// Corpus samples testdata/fake_job_postings.csv into testdata/postings.csv.
func (Bench) Corpus() error {
	return sh.RunV("go", "run", "./scripts/sample-postings.go")
}

func benchArgs() []string {
	args := []string{
		"-model", envOr("JOBSCORE_MODEL", "model.onnx"),
		"-corpus", envOr("JOBSCORE_CORPUS", "testdata/postings.csv"),
	}
	if vocab := os.Getenv("JOBSCORE_VOCAB"); vocab != "" {
		args = append(args, "-vocab", vocab)
	}
	return args
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// CI runs the full CI pipeline (lint, test, build).
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}

// Check runs quick validation (vet, lint, short tests).
func Check() error {
	st.Deps(Vet, Lint, TestShort)
	return nil
}

// Coverage generates a coverage report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Tidy runs go mod tidy and verifies the go.sum is clean.
func Tidy() error {
	if err := sh.Run("go", "mod", "tidy"); err != nil {
		return err
	}
	// Verify no changes to go.sum (useful for CI)
	output, err := sh.Output("git", "diff", "--exit-code", "go.sum")
	if err != nil {
		if output != "" {
			return fmt.Errorf("go.sum is not clean:\n%s", output)
		}
	}
	return nil
}
