package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// readSource reads the named file, or stdin when args is empty. The returned
// name is used in positions and is "<stdin>" for standard input.
func readSource(args []string) (source []byte, name string, err error) {
	if len(args) == 0 {
		source, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return source, "<stdin>", nil
	}
	name = args[0]
	source, err = os.ReadFile(name)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return source, name, nil
}

func sourceDir(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return filepath.Dir(args[0])
}
