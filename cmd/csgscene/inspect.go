// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/gogpu/csg"
	"github.com/gogpu/csg/capture"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var (
		seq  int64
		list bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [frames.db]",
		Short: "Decode and validate a captured frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := capture.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if list {
				return listFrames(cmd, db)
			}

			var f *csg.Frame
			if seq > 0 {
				f, err = db.Load(seq)
			} else {
				seq, f, err = db.Latest()
			}
			if err != nil {
				return err
			}
			return inspectFrame(cmd, seq, f)
		},
	}
	cmd.Flags().Int64VarP(&seq, "seq", "s", 0, "Frame sequence number (default latest)")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List captured frames")
	return cmd
}

func listFrames(cmd *cobra.Command, db *capture.DB) error {
	frames, err := db.Frames()
	if err != nil {
		return err
	}
	for _, info := range frames {
		fprintf(cmd, "#%d  %d shapes  %d bytes  %s\n",
			info.Seq, info.Count, info.Bytes, info.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func inspectFrame(cmd *cobra.Command, seq int64, f *csg.Frame) error {
	snap, err := csg.DecodeFrame(f)
	if err != nil {
		return err
	}

	fprintf(cmd, "frame #%d: %d shapes, %d bytes\n", seq, snap.Count, f.Size())
	for i, sh := range snap.Shapes {
		root := ""
		if sh.Root {
			root = " root"
		}
		if sh.Kind == csg.KindComposite && int(sh.Index) < len(snap.Composites) {
			c := snap.Composites[sh.Index]
			fprintf(cmd, "  [%d] %s #%d %s(%d, %d) k=%g%s\n",
				i, sh.Kind, sh.Index, c.Op, c.A, c.B, c.Blend, root)
			continue
		}
		fprintf(cmd, "  [%d] %s #%d color=(%.2f %.2f %.2f) refl=%.2f%s\n",
			i, sh.Kind, sh.Index,
			sh.Material.Color.R, sh.Material.Color.G, sh.Material.Color.B,
			sh.Material.Reflectivity, root)
	}

	if err := snap.Validate(); err != nil {
		return err
	}
	fprintf(cmd, "valid: %d roots\n", len(snap.Roots()))
	return nil
}
