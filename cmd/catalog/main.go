package main

import (
	"os"

	"github.com/preston-bernstein/f2p-catalog-service/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
