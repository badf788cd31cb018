package main

import (
	"os"

	"vboxctl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
