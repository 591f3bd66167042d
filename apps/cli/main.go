package main

import "github.com/testglow/testglow/apps/cli/cmd"

// Overridden at build time via -ldflags.
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.Execute(version, buildTime)
}
