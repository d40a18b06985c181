// Package main is the entry point for the hubfilter CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. The hubfilter tool fetches Docker Hub
// repositories and tags, filters them by configured rules, and writes
// curated allow-lists as YAML documents.
package main

import "github.com/ajxudir/hubfilter/cmd"

// main initializes and runs the hubfilter CLI application.
//
// It delegates all command parsing and execution to the cmd package,
// which handles the filtering pipeline and the version subcommand.
func main() {
	cmd.Execute()
}
