// Command mcp-huiting serves the HuiTing transcription service as MCP tools.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/mcp-huiting/version"
)

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s: %v\n", cmd.Name(), version.Short(), err)
		os.Exit(1)
	}
}
