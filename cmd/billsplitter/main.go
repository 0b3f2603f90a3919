package main

import (
	"os"

	"github.com/mmynk/billsplitter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
