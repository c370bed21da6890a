package main

import (
	"os"

	"github.com/Uraniumking007/frametracking/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
