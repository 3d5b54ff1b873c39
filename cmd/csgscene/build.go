// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/csg"
	"github.com/gogpu/csg/capture"
	"github.com/gogpu/csg/scenefile"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	capturePath string
	dumpDir     string
	capacity    csg.Capacity
}

func newBuildCmd() *cobra.Command {
	var o buildOptions

	cmd := &cobra.Command{
		Use:   "build [scene.yaml]",
		Short: "Build a scene file and sync its tables into a capture db or raw dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args[0], &o)
		},
	}
	cmd.Flags().StringVarP(&o.capturePath, "capture", "c", "", "Append the synced frame to this SQLite capture db")
	cmd.Flags().StringVarP(&o.dumpDir, "dump", "d", "", "Write raw table bytes into this directory")
	cmd.Flags().IntVar(&o.capacity.Shapes, "shapes", 0, "Override Shape Directory capacity")
	cmd.Flags().IntVar(&o.capacity.Spheres, "spheres", 0, "Override sphere table capacity")
	cmd.Flags().IntVar(&o.capacity.Cuboids, "cuboids", 0, "Override cuboid table capacity")
	cmd.Flags().IntVar(&o.capacity.Composites, "composites", 0, "Override composite table capacity")
	return cmd
}

func (o *buildOptions) collectionOptions() []csg.Option {
	var opts []csg.Option
	if o.capacity.Shapes > 0 {
		opts = append(opts, csg.WithShapeCapacity(o.capacity.Shapes))
	}
	if o.capacity.Spheres > 0 {
		opts = append(opts, csg.WithSphereCapacity(o.capacity.Spheres))
	}
	if o.capacity.Cuboids > 0 {
		opts = append(opts, csg.WithCuboidCapacity(o.capacity.Cuboids))
	}
	if o.capacity.Composites > 0 {
		opts = append(opts, csg.WithCompositeCapacity(o.capacity.Composites))
	}
	return opts
}

func runBuild(cmd *cobra.Command, path string, o *buildOptions) error {
	f, err := scenefile.Load(path)
	if err != nil {
		return err
	}
	scene, err := f.Build(o.collectionOptions()...)
	if err != nil {
		return err
	}

	var sinks []csg.Sink
	if o.capturePath != "" {
		db, err := capture.Open(o.capturePath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		sinks = append(sinks, db)
	}
	if o.dumpDir != "" {
		sinks = append(sinks, dumpSink(o.dumpDir))
	}

	counts := scene.Counts()
	fprintf(cmd, "%s: %d shapes (%d roots), %d spheres, %d cuboids, %d composites\n",
		filepath.Base(path), counts.Shapes, len(scene.Roots()),
		counts.Spheres, counts.Cuboids, counts.Composites)

	if len(sinks) == 0 {
		fprintf(cmd, "frame: %d bytes (not written, use --capture or --dump)\n", scene.Frame().Size())
		return nil
	}
	size := scene.Frame().Size()
	if err := scene.Sync(csg.MultiSink(sinks...)); err != nil {
		return err
	}
	fprintf(cmd, "synced %d bytes\n", size)
	return nil
}

// dumpSink writes each table of a frame to its own file in dir.
func dumpSink(dir string) csg.Sink {
	return csg.SinkFunc(func(f *csg.Frame) error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		for _, t := range []struct {
			name string
			data []byte
		}{
			{"header.bin", f.Header},
			{"shapes.bin", f.Shapes},
			{"spheres.bin", f.Spheres},
			{"cuboids.bin", f.Cuboids},
			{"composites.bin", f.Composites},
		} {
			if err := os.WriteFile(filepath.Join(dir, t.name), t.data, 0o644); err != nil { //nolint:gosec // table dumps are not secret
				return fmt.Errorf("dump: %w", err)
			}
		}
		return nil
	})
}
