// Package main is the entry point for the aepctl packet tool.
package main

import (
	"fmt"
	"os"

	"firestige.xyz/aep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
