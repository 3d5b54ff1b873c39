// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/gogpu/csg/gpu"
	"github.com/spf13/cobra"
)

func newLayoutCmd() *cobra.Command {
	var spirvPath string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the WGSL table layout or write it as SPIR-V",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if spirvPath == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), gpu.LayoutSource)
				return err
			}
			code, err := gpu.CompileLayout()
			if err != nil {
				return err
			}
			out := make([]byte, 0, len(code)*4)
			for _, w := range code {
				out = binary.LittleEndian.AppendUint32(out, w)
			}
			if err := os.WriteFile(spirvPath, out, 0o644); err != nil { //nolint:gosec // shader output
				return err
			}
			fprintf(cmd, "wrote %d SPIR-V words to %s\n", len(code), spirvPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&spirvPath, "spirv", "", "Compile the layout entry-point shader and write SPIR-V here")
	return cmd
}
