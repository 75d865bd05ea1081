// Command desalboard compares mechanical, electrical and hybrid wind-powered
// desalination plants.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/desalboard/desalboard/internal/cli"
	"github.com/desalboard/desalboard/internal/dataset"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // set by the linker

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitDatasetLoad = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	root := cli.NewRootCmd(version)
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps an error to the process exit code. Dataset load failures get
// their own code so scripts can tell a bad workbook from a bad invocation.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var loadErr *dataset.LoadError
	if errors.As(err, &loadErr) {
		return exitDatasetLoad
	}
	return exitError
}
