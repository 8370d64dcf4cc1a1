package main

import (
	"fmt"
	"os"

	"github.com/researchos/dataset-builder/cmd/dataset-builder/commands"
	"github.com/researchos/dataset-builder/display"
	"github.com/researchos/dataset-builder/logger"
)

func main() {
	defer logger.Cleanup()

	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, display.FormatError(err))
		os.Exit(1)
	}
}
