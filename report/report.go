// Package report renders simulation results as plain-text tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/sibexico/pagesim/replacement"
)

// Options controls table markers
type Options struct {
	EmptyMarker string
	FaultMarker string
}

// DefaultOptions returns the markers used when none are configured
func DefaultOptions() Options {
	return Options{EmptyMarker: "-", FaultMarker: "F"}
}

// FormatHitRatio renders a hit ratio percentage with two decimals, or "n/a"
// when the ratio is undefined.
func FormatHitRatio(ratio float64, defined bool) string {
	if !defined {
		return "n/a"
	}
	return strconv.FormatFloat(ratio, 'f', 2, 64) + "%"
}

// WriteResult writes the frame evolution table of r followed by its summary
func WriteResult(w io.Writer, r *replacement.Result, opts Options) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "\n%s\n\nReference string:\n", r.Policy)
	for _, page := range r.Reference {
		fmt.Fprintf(tw, "%d ", page)
	}
	fmt.Fprint(tw, "\n\nFrame evolution:\n")

	fmt.Fprint(tw, "Time\\Frame")
	for t := range r.Reference {
		fmt.Fprintf(tw, "\t%d", t)
	}
	fmt.Fprintln(tw)

	for f := 0; f < r.Frames; f++ {
		fmt.Fprintf(tw, "Frame %d", f)
		for t := range r.Reference {
			if page, ok := r.At(f, t); ok {
				fmt.Fprintf(tw, "\t%d", page)
			} else {
				fmt.Fprintf(tw, "\t%s", opts.EmptyMarker)
			}
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprint(tw, "Fault")
	for _, fault := range r.Faults {
		if fault {
			fmt.Fprintf(tw, "\t%s", opts.FaultMarker)
		} else {
			fmt.Fprint(tw, "\t")
		}
	}
	fmt.Fprintln(tw)

	if err := tw.Flush(); err != nil {
		return err
	}

	s := replacement.Summarize(r)
	_, err := fmt.Fprintf(w, "\nTotal Requests: %d\nPage Faults: %d\nHit Ratio: %s\n",
		s.Requests, s.Faults, FormatHitRatio(s.HitRatio, s.HitRatioDefined))
	return err
}

// WriteComparison writes one row per summary, in the order given
func WriteComparison(w io.Writer, summaries []replacement.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, "\nComparison:\nAlgorithm\tFaults\tHit%\n")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Policy, s.Faults, FormatHitRatio(s.HitRatio, s.HitRatioDefined))
	}

	return tw.Flush()
}
