package main

import (
	"os"

	"github.com/titellus/geonetwork-pnf/lib/cli"
)

func main() {
	os.Exit(cli.Execute())
}
