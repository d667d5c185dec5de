package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sibexico/pagesim/engine"
	"github.com/sibexico/pagesim/replacement"
	"github.com/sibexico/pagesim/report"
	"github.com/sibexico/pagesim/tracefile"
)

const menu = "\nMenu:\n1. FIFO\n2. LRU\n3. Optimal\n4. Compare All\n5. Exit\nChoose option: "

// session drives the interactive prompt loop
type session struct {
	in     *bufio.Reader
	out    io.Writer
	engine *engine.Engine
	opts   report.Options
}

func newSession(in io.Reader, out io.Writer, e *engine.Engine, opts report.Options) *session {
	return &session{
		in:     bufio.NewReader(in),
		out:    out,
		engine: e,
		opts:   opts,
	}
}

// readLine returns the next input line without its newline. io.EOF is only
// returned once no more input is left.
func (s *session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptReference asks until a non-blank, well-formed reference string is given
func (s *session) promptReference() ([]replacement.PageID, error) {
	fmt.Fprintln(s.out, "Enter reference string (space-separated integers):")
	for {
		line, err := s.readLine()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		ref, err := tracefile.Parse(line)
		if err != nil {
			fmt.Fprintf(s.out, "Invalid reference string: %v\nEnter reference string (space-separated integers):\n", err)
			continue
		}
		return ref, nil
	}
}

// promptFrames asks until a positive integer is given
func (s *session) promptFrames() (int, error) {
	fmt.Fprintln(s.out, "Enter number of frames:")
	for {
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}

		frames, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && frames > 0 {
			return frames, nil
		}
		fmt.Fprintln(s.out, "Enter valid positive integer:")
	}
}

// loop shows the menu until the user exits or input ends
func (s *session) loop(ref []replacement.PageID, frames int) error {
	for {
		fmt.Fprint(s.out, menu)

		line, err := s.readLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			continue
		}
		if choice == 5 {
			break
		}

		if err := s.dispatch(choice, ref, frames); err != nil {
			return err
		}
	}

	fmt.Fprintln(s.out, "Exiting simulator.")
	return nil
}

func (s *session) dispatch(choice int, ref []replacement.PageID, frames int) error {
	switch choice {
	case 1, 2, 3:
		r, err := s.engine.Run(replacement.Policies[choice-1], ref, frames)
		if err != nil {
			return err
		}
		return report.WriteResult(s.out, r, s.opts)
	case 4:
		summaries, err := s.engine.Compare(ref, frames)
		if err != nil {
			return err
		}
		return report.WriteComparison(s.out, summaries)
	default:
		fmt.Fprintln(s.out, "Invalid option")
		return nil
	}
}
