//go:build mage

// Package main contains Mage build targets for screening-engine developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories a screening run expects.
var projectDirs = []string{
	"data",
	"outputs",
	"outputs/runs",
}

const (
	binDir  = "bin"
	binName = "screening-engine"
	cmdPkg  = "./cmd/screening-engine"
)

// Init creates the data and output directories.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Screen ranks every <study>_seeds / <study>_articles pair found in data/
// and writes results, run files, and metrics under outputs/.
func Screen() error {
	mg.Deps(Init, Build)

	seedFiles, err := filepath.Glob(filepath.Join("data", "*_seeds.*"))
	if err != nil {
		return err
	}
	if len(seedFiles) == 0 {
		fmt.Println("No *_seeds files in data/.")
		return nil
	}

	bin := filepath.Join(binDir, binName)
	for _, seeds := range seedFiles {
		base := filepath.Base(seeds)
		study := base[:strings.Index(base, "_seeds")]
		matches, err := filepath.Glob(filepath.Join("data", study+"_articles.*"))
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			fmt.Printf("Skipping %s: no matching articles file.\n", study)
			continue
		}
		err = sh.RunV(bin, "rank", seeds, matches[0],
			"--evaluate",
			"--output-dir", "outputs",
			"--run-file", filepath.Join("outputs", "runs", study+".yaml"),
			"--metrics-file", filepath.Join("outputs", study+".prom"),
		)
		if err != nil {
			return fmt.Errorf("ranking %s: %w", study, err)
		}
	}
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints project metrics: Go production and test line counts.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines walks the tree and counts non-blank lines in Go files,
// skipping directories that start with "_" or ".".
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}
