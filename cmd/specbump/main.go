package main

import (
	"os"

	"github.com/rtissier/specbump/cmd/specbump/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
