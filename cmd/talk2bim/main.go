package main

import (
	"os"

	"github.com/bauwerk-labs/talk2bim/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
