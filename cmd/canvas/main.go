package main

import (
	"context"
	"fmt"
	"os"

	"github.com/canvaslms/canvas-cli/internal/cmd"
)

var (
	executeCmd  = cmd.Execute
	mapExitCode = cmd.ExitCode
	terminate   = os.Exit
)

func run(args []string) int {
	ctx := context.Background()
	if err := executeCmd(ctx, args); err != nil {
		code := mapExitCode(err)
		if code != 0 {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return code
	}
	return 0
}

func main() {
	terminate(run(os.Args[1:]))
}
