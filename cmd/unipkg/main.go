// cmd/unipkg/main.go
package main

import (
	"os"

	"github.com/unicorn-engine/unipkg/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
