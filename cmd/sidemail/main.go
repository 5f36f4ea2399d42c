// Command sidemail calls the Sidemail API from the command line.
package main

import (
	"os"
)

// version will be set by goreleaser during build
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
