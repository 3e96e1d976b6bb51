// Package main provides a CLI tool to check the bundled example specs
// and workloads. It loads every JSON file under examples/ and reports
// which ones parse and validate.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarchlab/drampower/spec"
	"github.com/sarchlab/drampower/trace"
)

func main() {
	// Find repository root
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	// Walk up to find go.mod
	repoRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(repoRoot, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(repoRoot)
		if parent == repoRoot {
			fmt.Fprintf(os.Stderr, "Could not find repository root (go.mod)\n")
			os.Exit(1)
		}
		repoRoot = parent
	}

	exampleDir := filepath.Join(repoRoot, "examples")
	entries, err := os.ReadDir(exampleDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Examples not available: %v\n", err)
		fmt.Println("0")
		os.Exit(0)
	}

	var good, bad int

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		path := filepath.Join(exampleDir, name)
		if err := checkFile(path, name); err != nil {
			fmt.Fprintf(os.Stderr, "  ❌ %s - %v\n", name, err)
			bad++
		} else {
			fmt.Fprintf(os.Stderr, "  ✅ %s\n", name)
			good++
		}
	}

	fmt.Printf("%d\n", good)

	if bad > 0 {
		os.Exit(1)
	}
}

// checkFile loads a file as a spec or a workload, chosen by its name
// suffix.
func checkFile(path, name string) error {
	if strings.HasSuffix(name, "_spec.json") {
		_, err := spec.Load(path)
		return err
	}

	w, err := trace.Load(path)
	if err != nil {
		return err
	}
	if len(w.Commands) == 0 {
		return fmt.Errorf("workload has no commands")
	}
	return nil
}
