// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"

	"github.com/gogpu/csg"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "csgscene",
		Short:         "Build and inspect GPU-ready CSG scene tables",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newBuildCmd(), newInspectCmd(), newLayoutCmd())
	return root
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	csg.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// fprintf writes to the command's output with thousands separators in
// numbers.
func fprintf(cmd *cobra.Command, format string, args ...any) {
	_, _ = message.NewPrinter(language.English).Fprintf(cmd.OutOrStdout(), format, args...)
}
