package main

import (
	"github.com/tacogips/pfegen/internal/cli"
)

// Version information is injected into internal/build via ldflags.
func main() {
	cli.Execute()
}
