package main

import (
	"os"

	"roguecore/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if len(os.Args) == 1 {
		cmd.SetArgs([]string{"play"})
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
