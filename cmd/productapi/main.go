package main

import (
	"os"

	"github.com/pankajredekar/productapi/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
