package main

import (
	"fmt"
	"os"

	"github.com/mskaar/pensum/internal/release"
)

func main() {
	if err := release.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
