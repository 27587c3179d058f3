//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Search builds the CLI and runs a search for $QUERY (sorted by $SORT,
// default title) against the live collection APIs.
func Search() error {
	mg.Deps(Build)
	query := os.Getenv("QUERY")
	if query == "" {
		return fmt.Errorf("set QUERY, e.g. QUERY=sunflowers mage search")
	}
	sort := os.Getenv("SORT")
	if sort == "" {
		sort = "title"
	}
	return sh.RunV("./"+binDir+"/"+binName, "search", "--sort", sort, query)
}
