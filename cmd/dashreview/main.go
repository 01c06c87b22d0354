package main

import (
	"os"

	"github.com/dshills/dashreview/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
