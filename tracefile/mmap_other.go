//go:build !unix

package tracefile

import (
	"fmt"
	"os"
)

func withFileData(path string, fn func([]byte) error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return fn(data)
}
