// Package main provides the entry point for the fuse CLI tool.
package main

import "github.com/extractly/fusion/cmd/fuse/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
