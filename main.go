package main

import (
	"os"

	"github.com/serenity-circle/serenity/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
