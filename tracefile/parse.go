// Package tracefile reads and writes reference strings, either as
// whitespace-separated text or as a compact binary trace.
package tracefile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sibexico/pagesim/replacement"
)

// Parse reads a reference string of whitespace-separated base-10 integers
func Parse(s string) ([]replacement.PageID, error) {
	return Read(strings.NewReader(s))
}

// Read parses every whitespace-separated token of r as a page id. Line
// breaks are treated like any other whitespace.
func Read(r io.Reader) ([]replacement.PageID, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var ref []replacement.PageID
	for scanner.Scan() {
		token := scanner.Text()
		id, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("reference %d: invalid page id %q: %w", len(ref), token, err)
		}
		ref = append(ref, replacement.PageID(id))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reference string: %w", err)
	}

	return ref, nil
}

// Format renders ref as space-separated text that Parse accepts
func Format(ref []replacement.PageID) string {
	var sb strings.Builder
	for i, page := range ref {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(int(page)))
	}
	return sb.String()
}
