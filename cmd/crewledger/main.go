package main

import (
	"os"

	"github.com/solarwork/crewledger/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
