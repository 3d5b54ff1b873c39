// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command csgscene builds, captures and inspects csg scenes.
//
//	csgscene build scene.yaml --capture frames.db
//	csgscene inspect frames.db
//	csgscene layout --spirv layout.spv
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
