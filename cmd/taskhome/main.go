package main

import (
	"os"

	"github.com/monocle-dev/taskhome/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
