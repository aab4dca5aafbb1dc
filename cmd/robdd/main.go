// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command robdd builds binary decision diagrams from boolean formulas. See
// robdd help for the list of commands.
package main

import (
	"fmt"
	"os"

	"github.com/dalzilio/robdd/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "robdd:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
