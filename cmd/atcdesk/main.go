package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

func main() {
	Execute()
}

// Execute runs the command tree. This is called by main.main().
func Execute() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one invocation and releases whatever it opened, whether or
// not the command failed.
func run(args []string, stdout, stderr io.Writer) error {
	root, a := newRootCmd()
	defer a.teardown()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(context.Background())
}
