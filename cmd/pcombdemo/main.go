// Command pcombdemo exercises pkg/combinator's bracketed-identifier-list
// grammar (internal/demo) from the command line: lex a file into the
// demo token stream, or parse it into an identifier list, optionally
// with recovery.
package main

import (
	"os"

	"github.com/cwbudde/pcomb/cmd/pcombdemo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
