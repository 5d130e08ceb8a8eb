// Muse - a creative writing prompt generator.
package main

import (
	"os"

	"github.com/manav03panchal/muse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
