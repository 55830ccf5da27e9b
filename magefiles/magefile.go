//go:build mage

// Package main contains Mage build targets for angioreport developer tooling.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pdiddy/angioreport/internal/catalog"
)

const (
	binDir     = "bin"
	binName    = "angioreport"
	cmdPkg     = "./cmd/angioreport"
	goldenDir  = "pkg/diagnosis/testdata"
	sampleFile = "pkg/diagnosis/testdata/full_report.txt"
)

func binPath() string {
	return filepath.Join(binDir, binName)
}

// Build compiles the CLI binary into bin/. The version is taken from
// ANGIOREPORT_VERSION when set.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version := os.Getenv("ANGIOREPORT_VERSION")
	if version == "" {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath(), cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath())
	return nil
}

// Test runs the unit tests of every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Sample builds the CLI and diagnoses the bundled sample report in both
// languages and as JSON.
func Sample() error {
	mg.Deps(Build)
	for _, args := range [][]string{
		{"diagnose", sampleFile},
		{"diagnose", sampleFile, "--lang", "en"},
		{"diagnose", sampleFile, "--format", "json"},
	} {
		if err := sh.RunV(binPath(), args...); err != nil {
			return fmt.Errorf("running %s: %w", strings.Join(args, " "), err)
		}
	}
	return nil
}

// Golden rewrites the expected diagnosis of every report under
// pkg/diagnosis/testdata. Review the diff before committing.
func Golden() error {
	mg.Deps(Build)
	reports, err := filepath.Glob(filepath.Join(goldenDir, "*.txt"))
	if err != nil {
		return err
	}
	for _, report := range reports {
		out, err := sh.Output(binPath(), "diagnose", report)
		if err != nil {
			return fmt.Errorf("diagnosing %s: %w", report, err)
		}
		golden := strings.TrimSuffix(report, ".txt") + ".golden"
		if err := os.WriteFile(golden, []byte(out+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", golden, err)
		}
		fmt.Println("  ", golden)
	}
	return nil
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints catalog coverage, the number of golden reports and Go line
// counts per package.
func Stats() error {
	cat := catalog.Default()
	lex := cat.Lexicon()
	fmt.Printf("Arteries:        %d\n", len(cat.Arteries()))
	fmt.Printf("Abbreviations:   %d\n", len(cat.Abbreviations()))
	fmt.Printf("Names:           %d\n", len(cat.Names()))
	fmt.Printf("Lexicon roots:   %d\n", len(lex.Occlusion)+len(lex.NoOcclusion)+len(lex.Stent)+
		len(lex.Restenosis)+len(lex.NoRestenosis)+len(lex.Atherosclerosis))

	reports, err := filepath.Glob(filepath.Join(goldenDir, "*.txt"))
	if err != nil {
		return err
	}
	fmt.Printf("Golden reports:  %d\n\n", len(reports))

	counts, err := goLinesByPackage(".")
	if err != nil {
		return err
	}
	dirs := make([]string, 0, len(counts))
	for dir := range counts {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	fmt.Printf("%-24s  %6s  %6s\n", "Package", "Code", "Tests")
	for _, dir := range dirs {
		c := counts[dir]
		fmt.Printf("%-24s  %6d  %6d\n", dir, c[0], c[1])
	}
	return nil
}

// goLinesByPackage counts non-blank Go lines per directory, split into
// production [0] and test [1] files.
func goLinesByPackage(root string) (map[string][2]int, error) {
	counts := make(map[string][2]int)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			base := d.Name()
			if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == binDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				n++
			}
		}
		c := counts[filepath.Dir(path)]
		if strings.HasSuffix(path, "_test.go") {
			c[1] += n
		} else {
			c[0] += n
		}
		counts[filepath.Dir(path)] = c
		return nil
	})
	return counts, err
}
