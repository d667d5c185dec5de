// Command pagesim replays a reference string under FIFO, LRU and Optimal
// page replacement and prints the frame evolution of each run.
//
// Without -ref or -trace it runs an interactive session on stdin.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sibexico/pagesim/engine"
	"github.com/sibexico/pagesim/replacement"
	"github.com/sibexico/pagesim/report"
	"github.com/sibexico/pagesim/tracefile"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "pagesim:", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	refText    string
	tracePath  string
	exportPath string
	frames     int
	framesSet  bool
	policy     string
	logMetrics bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("pagesim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "JSON configuration file")
	fs.StringVar(&opts.refText, "ref", "", "reference string, e.g. \"1 2 3 4 1 2 5\"")
	fs.StringVar(&opts.tracePath, "trace", "", "reference string file (text or binary trace)")
	fs.StringVar(&opts.exportPath, "export", "", "write the reference string to this binary trace file")
	fs.IntVar(&opts.frames, "frames", 0, "number of frames (overrides config)")
	fs.StringVar(&opts.policy, "policy", "", "fifo, lru, optimal or all (overrides config)")
	fs.BoolVar(&opts.logMetrics, "metrics", false, "log simulator metrics on exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "frames" {
			opts.framesSet = true
		}
	})
	if opts.refText != "" && opts.tracePath != "" {
		return nil, errors.New("-ref and -trace are mutually exclusive")
	}
	return opts, nil
}

func loadConfig(opts *options) (*engine.Config, error) {
	config := engine.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if config, err = engine.LoadConfigFromFile(opts.configPath); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	if opts.framesSet {
		config.Frames = opts.frames
	}
	if opts.policy != "" {
		config.Policy = opts.policy
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	config, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, config.LogLevel, config.LogFormat)
	if err != nil {
		return err
	}

	e, err := engine.New(config, logger)
	if err != nil {
		return err
	}
	if opts.logMetrics {
		defer e.Metrics().LogMetrics(logger)
	}

	reportOpts := report.Options{EmptyMarker: config.EmptyMarker, FaultMarker: config.FaultMarker}

	var ref []replacement.PageID
	switch {
	case opts.refText != "":
		ref, err = tracefile.Parse(opts.refText)
	case opts.tracePath != "":
		ref, err = tracefile.LoadFile(opts.tracePath)
	default:
		s := newSession(stdin, stdout, e, reportOpts)
		return interactive(s, opts, config, logger)
	}
	if err != nil {
		return err
	}

	logger.Info("reference string loaded", slog.Int("requests", len(ref)), slog.Int("frames", config.Frames))

	if opts.exportPath != "" {
		if err := exportTrace(opts.exportPath, ref, config, logger); err != nil {
			return err
		}
	}

	return runBatch(stdout, e, reportOpts, ref, config)
}

func interactive(s *session, opts *options, config *engine.Config, logger *slog.Logger) error {
	fmt.Fprintln(s.out, "Page Replacement Algorithm Simulator")

	ref, err := s.promptReference()
	if err != nil {
		return inputEnded(err)
	}

	frames := config.Frames
	if !opts.framesSet {
		if frames, err = s.promptFrames(); err != nil {
			return inputEnded(err)
		}
	}

	if opts.exportPath != "" {
		if err := exportTrace(opts.exportPath, ref, config, logger); err != nil {
			return err
		}
	}

	return s.loop(ref, frames)
}

// inputEnded treats end of input during the prompts as a normal exit
func inputEnded(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func exportTrace(path string, ref []replacement.PageID, config *engine.Config, logger *slog.Logger) error {
	compression, err := tracefile.ParseCompression(config.TraceCompression)
	if err != nil {
		return err
	}
	if err := tracefile.SaveFile(path, ref, compression); err != nil {
		return err
	}
	logger.Info("trace exported", slog.String("path", path), slog.String("compression", compression.String()))
	return nil
}

func runBatch(stdout io.Writer, e *engine.Engine, reportOpts report.Options, ref []replacement.PageID, config *engine.Config) error {
	if config.Policy == engine.PolicyAll {
		for _, policy := range replacement.Policies {
			r, err := e.Run(policy, ref, config.Frames)
			if err != nil {
				return err
			}
			if err := report.WriteResult(stdout, r, reportOpts); err != nil {
				return err
			}
		}
		summaries, err := e.Compare(ref, config.Frames)
		if err != nil {
			return err
		}
		return report.WriteComparison(stdout, summaries)
	}

	policy, err := replacement.ParsePolicy(config.Policy)
	if err != nil {
		return err
	}
	r, err := e.Run(policy, ref, config.Frames)
	if err != nil {
		return err
	}
	return report.WriteResult(stdout, r, reportOpts)
}
