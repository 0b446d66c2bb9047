package main

import (
	"os"

	"github.com/paperquant/aitrader/cmd/aitrader/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
