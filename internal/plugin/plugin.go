// Package plugin runs external zermelo-* commands found on PATH, so the CLI
// can be extended without rebuilding it.
package plugin

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Prefix is the executable name prefix that marks a plugin.
const Prefix = "zermelo-"

// FindPlugin looks for a zermelo-* plugin in the PATH
func FindPlugin(name string) (string, error) {
	pluginName := Prefix + name
	path, err := exec.LookPath(pluginName)
	if err != nil {
		return "", fmt.Errorf("plugin '%s' not found in PATH", pluginName)
	}
	return path, nil
}

// ExecutePlugin runs a zermelo-* plugin with the given arguments, wired to
// the current process's standard streams.
func ExecutePlugin(name string, args []string) error {
	pluginPath, err := FindPlugin(name)
	if err != nil {
		return err
	}

	cmd := exec.Command(pluginPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	return cmd.Run()
}

// ListPlugins returns the sorted names of executable zermelo-* plugins in PATH
func ListPlugins() ([]string, error) {
	pathEnv := os.Getenv("PATH")
	if pathEnv == "" {
		return nil, nil
	}

	plugins := make(map[string]bool)

	for _, dir := range strings.Split(pathEnv, string(os.PathListSeparator)) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasPrefix(name, Prefix) || entry.IsDir() {
				continue
			}

			// Stat follows symlinks to the executable.
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			if info.Mode()&0111 != 0 {
				plugins[strings.TrimPrefix(name, Prefix)] = true
			}
		}
	}

	result := make([]string, 0, len(plugins))
	for plugin := range plugins {
		result = append(result, plugin)
	}
	sort.Strings(result)

	return result, nil
}
