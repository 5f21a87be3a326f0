package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"framelint/internal/trace"
)

// setupTracing inspects trace-related flags, initializes the tracer and
// attaches it to the command context; commands read it back through
// trace.FromContext. It returns a cleanup function and an error if
// initialization fails.
func setupTracing(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	levelStr, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	outPath, err := root.PersistentFlags().GetString("trace-out")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-out flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	var w io.Writer = os.Stderr
	var file *os.File
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace output: %w", err)
		}
		w = f
		file = f
	}

	tracer := trace.NewStreamTracer(w, level)
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if file != nil {
			if err := file.Close(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
			}
		}
	}
	return cleanup, nil
}
