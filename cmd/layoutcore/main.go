// Command layoutcore inspects the tiling layout engine: it builds a
// synthetic container tree and prints or live-renders the geometry the
// layout engine settles it into.
package main

import (
	"fmt"
	"os"

	"github.com/bnema/layoutcore/internal/cli"
)

// Build-time variable, set via ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
