//go:build mage

// Package main provides build targets for recordkeeper using Mage.
//
// Usage:
//
//	mage build            Compile server and client binaries to bin/
//	mage test             Run all tests
//	mage testPostgres     Run tests including postgres (needs TEST_DATABASE_URI)
//	mage lint             Run golangci-lint
//	mage run              Build and start the server
//	mage clean            Remove build artifacts
package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo     = "go"
	binLint   = "golangci-lint"
	binaryDir = "bin"
)

// binaries maps output names to their main packages.
var binaries = map[string]string{
	"recordkeeper": "./cmd/server",
	"recordctl":    "./cmd/client",
}

// Build compiles every binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	for name, pkg := range binaries {
		if err := sh.RunV(binGo, "build", "-o", filepath.Join(binaryDir, name), pkg); err != nil {
			return err
		}
	}
	return nil
}

// Test runs all tests. Postgres tests skip unless TEST_DATABASE_URI is set.
func Test() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// TestPostgres runs the postgres store and migration tests against
// TEST_DATABASE_URI.
func TestPostgres() error {
	if os.Getenv("TEST_DATABASE_URI") == "" {
		return errors.New("TEST_DATABASE_URI is not set")
	}
	return sh.RunV(binGo, "test", "-v", "./internal/infrastructure/storage/postgres/...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Run builds and starts the server with the local environment.
func Run() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, "recordkeeper"), "serve")
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binaryDir)
}
