// Package main provides build targets for the sr project using Mage.
//
// Usage:
//
//	mage build           Compile the sr binary to bin/
//	mage test            Run unit tests
//	mage testAll         Run unit tests plus the lint and tidy checks
//	mage testFunctional  Build, then run the Gherkin suite against the binary
//	mage lint            Run golangci-lint
//	mage clean           Remove build artifacts
//	mage install         Install sr to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "sr"
	binaryDir  = "bin"
	cmdDir     = "./cmd/sr"
)

// Build compiles the sr binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs the unit tests, skipping the slow lint checks.
func Test() error {
	return sh.RunV("go", "test", "-short", "./...")
}

// TestAll runs everything go test knows about, including the gofmt,
// vet, tidy, and golangci-lint guards at the repository root.
func TestAll() error {
	return sh.RunV("go", "test", "./...")
}

// TestFunctional builds the binary, then runs the Gherkin scenarios
// in test/functional against it.
func TestFunctional() error {
	mg.Deps(Build)

	bin, err := filepath.Abs(filepath.Join(binaryDir, binaryName))
	if err != nil {
		return err
	}
	env := map[string]string{"SR_TEST_BINARY": bin}
	return sh.RunWithV(env, "go", "test", "-v", "./test/functional/")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
