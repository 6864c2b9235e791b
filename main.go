package main

import (
	"os"

	"github.com/eznix86/kstack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
