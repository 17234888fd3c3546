// AtlasPack packs sprite and glyph rectangles into texture atlas pages.
//
// Usage:
//
//	atlaspack -i layout.json -o packed.json
//	atlaspack import -i sprites.csv -o layout.json --spacing-x 2 --spacing-y 2
//	atlaspack compare -i layout.json
//	atlaspack serve --addr :8080
//
// On failure the tool prints "exception <message>" to stdout and exits 1.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/AtlasPack/internal/cli"
)

func run(args []string, stdout, stderr io.Writer) int {
	if err := cli.Execute(args, stdout, stderr); err != nil {
		fmt.Fprintf(stdout, "exception %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
