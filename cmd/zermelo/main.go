package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/njt/zermelo/internal/plugin"
)

func main() {
	rootCmd := newRootCmd(newApp(os.Stdout, os.Stderr))

	// Check if we should try to execute a plugin
	if len(os.Args) > 1 {
		cmdName := os.Args[1]
		isKnownCmd := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == cmdName || cmd.HasAlias(cmdName) {
				isKnownCmd = true
				break
			}
		}

		// If not a known command and not a flag, try plugin
		if !isKnownCmd && cmdName != "" && !strings.HasPrefix(cmdName, "-") {
			if _, err := plugin.FindPlugin(cmdName); err == nil {
				if err := plugin.ExecutePlugin(cmdName, os.Args[2:]); err != nil {
					fmt.Fprintf(os.Stderr, "Error: plugin %s failed: %v\n", cmdName, err)
					os.Exit(1)
				}
				return
			}
			// Fall through to cobra, which reports the unknown command.
		}
	}

	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
