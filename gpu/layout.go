// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// LayoutSource is the canonical WGSL declaration of the scene tables and
// their bindings. Ray-marching shaders prepend it to their own source.
//
//go:embed layout.wgsl
var LayoutSource string

//go:embed layout_entry.wgsl
var layoutEntrySource string

// Binding numbers of the scene tables in bind group 0.
const (
	BindingHeader     = 0
	BindingShapes     = 1
	BindingSpheres    = 2
	BindingCuboids    = 3
	BindingComposites = 4
)

// EntrySource returns LayoutSource followed by a minimal compute entry
// point that reads every binding.
func EntrySource() string {
	return LayoutSource + "\n" + layoutEntrySource
}

// CompileLayout compiles EntrySource to SPIR-V words. It fails if the WGSL
// declarations no longer parse or validate.
func CompileLayout() ([]uint32, error) {
	return compileSPIRV(EntrySource())
}

// compileSPIRV compiles WGSL source to a SPIR-V uint32 slice.
func compileSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile layout shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return spirvCode, nil
}
