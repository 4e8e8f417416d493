// Command record-mapper generates parsers that convert token records into
// structs tagged with col:"N".
package main

import (
	"context"
	"log/slog"
	"os"

	"record-mapper/internal/cli"
	"record-mapper/internal/log"
)

func main() {
	err := cli.Run(context.Background(), os.Stdout, os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error(
			"run failed",
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
