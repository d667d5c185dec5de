package tracefile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sibexico/pagesim/replacement"
)

// LoadFile reads a reference string from path. Binary traces are recognized
// by their magic number; anything else is parsed as text.
func LoadFile(path string) ([]replacement.PageID, error) {
	var ref []replacement.PageID
	err := withFileData(path, func(data []byte) error {
		var err error
		if IsTrace(data) {
			ref, err = Decode(data)
		} else {
			ref, err = Read(bytes.NewReader(data))
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load trace %s: %w", path, err)
	}
	return ref, nil
}

// SaveFile writes ref to path as a binary trace
func SaveFile(path string, ref []replacement.PageID, compression Compression) error {
	data, err := Encode(ref, compression)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trace file: %w", err)
	}
	return nil
}
