package main

import (
	"os"

	"github.com/dshills/qprimes/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
