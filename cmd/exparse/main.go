package main

import (
	"os"

	"github.com/aledsdavies/exparse/cli"
)

func main() {
	os.Exit(cli.Execute())
}
