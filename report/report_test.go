package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibexico/pagesim/replacement"
)

func TestFormatHitRatio(t *testing.T) {
	assert.Equal(t, "25.00%", FormatHitRatio(25, true))
	assert.Equal(t, "41.67%", FormatHitRatio(100.0*5/12, true))
	assert.Equal(t, "n/a", FormatHitRatio(0, false))
}

func TestWriteResult(t *testing.T) {
	r, err := replacement.SimulateFIFO([]replacement.PageID{1, 2, 1, 3}, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, r, DefaultOptions()))
	out := buf.String()

	assert.Contains(t, out, "FIFO")
	assert.Contains(t, out, "1 2 1 3")
	assert.Contains(t, out, "Total Requests: 4")
	assert.Contains(t, out, "Page Faults: 3")
	assert.Contains(t, out, "Hit Ratio: 25.00%")

	assert.Equal(t, []string{"Frame", "2", "-", "-", "-", "3"}, fieldsOf(out, "Frame 2"))
	assert.Equal(t, []string{"Fault", "F", "F", "F"}, fieldsOf(out, "Fault"))
}

// fieldsOf returns the whitespace-separated fields of the first line
// starting with prefix
func fieldsOf(out, prefix string) []string {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.Fields(line)
		}
	}
	return nil
}

func TestWriteResultCustomMarkers(t *testing.T) {
	r, err := replacement.SimulateLRU([]replacement.PageID{4}, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, r, Options{EmptyMarker: ".", FaultMarker: "*"}))

	assert.Equal(t, []string{"Frame", "1", "."}, fieldsOf(buf.String(), "Frame 1"))
	assert.Equal(t, []string{"Fault", "*"}, fieldsOf(buf.String(), "Fault"))
}

func TestWriteResultEmptyReference(t *testing.T) {
	r, err := replacement.SimulateOptimal(nil, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, r, DefaultOptions()))
	assert.Contains(t, buf.String(), "Total Requests: 0")
	assert.Contains(t, buf.String(), "Hit Ratio: n/a")
}

func TestWriteComparison(t *testing.T) {
	summaries := []replacement.Summary{
		{Policy: replacement.PolicyFIFO, Requests: 12, Faults: 9, HitRatio: 25, HitRatioDefined: true},
		{Policy: replacement.PolicyLRU, Requests: 12, Faults: 10, HitRatio: 100.0 * 2 / 12, HitRatioDefined: true},
		{Policy: replacement.PolicyOptimal, Requests: 12, Faults: 7, HitRatio: 100.0 * 5 / 12, HitRatioDefined: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteComparison(&buf, summaries))

	var rows [][]string
	for _, line := range strings.Split(buf.String(), "\n") {
		if fields := strings.Fields(line); len(fields) == 3 {
			rows = append(rows, fields)
		}
	}
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Algorithm", "Faults", "Hit%"}, rows[0])
	assert.Equal(t, []string{"FIFO", "9", "25.00%"}, rows[1])
	assert.Equal(t, []string{"LRU", "10", "16.67%"}, rows[2])
	assert.Equal(t, []string{"Optimal", "7", "41.67%"}, rows[3])
}
