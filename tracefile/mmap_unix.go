//go:build unix

package tracefile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// withFileData maps path read-only and hands the mapping to fn. The slice
// is only valid until fn returns.
func withFileData(path string, fn func([]byte) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	// mmap rejects zero-length mappings
	if info.Size() == 0 {
		return fn(nil)
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("failed to map file: %w", err)
	}
	defer unix.Munmap(data)

	return fn(data)
}
