// Command lookup prompts for a person or city with typeahead suggestions from
// the search service and prints the chosen id and label.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
