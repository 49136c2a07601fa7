// mdbook-private-chapters is an mdBook preprocessor that removes private
// chapters from a book before it is rendered.
package main

import (
	"os"

	"github.com/hupe1980/mdbook-private-chapters/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
