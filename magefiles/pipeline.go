package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts the exports in the current directory
// into converted/.
func Convert() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "convert")
}

// Store converts the exports, then loads converted/ into converted/health.db.
func Store() error {
	mg.SerialDeps(Convert)
	return sh.RunV(filepath.Join(binDir, binName), "store")
}
