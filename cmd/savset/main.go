// Package main provides the entry point for the savset CLI tool.
package main

import (
	"github.com/variantlab/savset/cmd/savset/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
