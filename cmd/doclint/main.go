package main

import (
	"os"

	"github.com/mvp-joe/doclint/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
