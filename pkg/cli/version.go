package cli

import (
	"flag"
	"fmt"
	"runtime"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

func newVersionCommand() *Command {
	return &Command{
		Name:        "version",
		Description: "Print the spokedoc version",
		Flags:       flag.NewFlagSet("version", flag.ExitOnError),
		Run:         runVersion,
	}
}

func runVersion(args []string) error {
	fmt.Printf("spokedoc %s (%s/%s)\n", Version, runtime.GOOS, runtime.GOARCH)
	return nil
}
