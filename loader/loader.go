// Package loader reads ledger files from disk or standard input.
package loader

import (
	"fmt"
	"io"
	"os"
)

// Source holds a ledger file's contents together with the name used in
// diagnostics.
type Source struct {
	// Filename is the path as given by the user, or "<stdin>" when the
	// contents were read from standard input.
	Filename string

	// Contents is the raw file data.
	Contents []byte
}

// Load reads the ledger at path. A path of "-" reads from standard input.
func Load(path string) (*Source, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return &Source{Filename: "<stdin>", Contents: data}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &Source{Filename: path, Contents: data}, nil
}
