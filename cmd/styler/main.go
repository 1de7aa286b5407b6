// Command styler formats and checks Java-family source files: a
// scan -> parse -> convert -> rule-engine -> write pipeline exposed as
// a cobra subcommand tree with staged vs. direct write modes.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
