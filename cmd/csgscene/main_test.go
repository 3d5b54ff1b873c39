// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/csg"
	"github.com/gogpu/csg/capture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScene = `
seed: 3
shapes:
  - sphere: {center: [0, 0, 30], radius: 3}
    material: {color: red}
  - union:
      - sphere: {center: [0, 0, 30], radius: 3}
      - cuboid: {center: [0, 4, 25], extents: [1, 1, 1]}
random:
  - kind: sphere
    count: 3
    min: [-5, -5, 20]
    max: [5, 5, 40]
    minRadius: 0.5
    maxRadius: 1
`

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { csg.SetLogger(nil) })

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildCapture(t *testing.T) {
	scene := writeScene(t, testScene)
	dbPath := filepath.Join(t.TempDir(), "frames.db")

	out, err := run(t, "build", scene, "--capture", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "7 shapes (5 roots)")
	assert.Contains(t, out, "synced")

	db, err := capture.Open(dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, f, err := db.Latest()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), f.Count())
}

func TestBuildDump(t *testing.T) {
	scene := writeScene(t, testScene)
	dir := filepath.Join(t.TempDir(), "dump")

	_, err := run(t, "build", scene, "--dump", dir)
	require.NoError(t, err)

	shapes, err := os.ReadFile(filepath.Join(dir, "shapes.bin"))
	require.NoError(t, err)
	assert.Len(t, shapes, 7*csg.ShapeStride)

	header, err := os.ReadFile(filepath.Join(dir, "header.bin"))
	require.NoError(t, err)
	assert.Len(t, header, csg.HeaderSize)
}

func TestBuildWithoutSinks(t *testing.T) {
	out, err := run(t, "build", writeScene(t, testScene))
	require.NoError(t, err)
	assert.Contains(t, out, "not written")
}

func TestBuildCapacityOverride(t *testing.T) {
	_, err := run(t, "build", writeScene(t, testScene), "--spheres", "2")
	require.ErrorIs(t, err, csg.ErrCapacityExceeded)
}

func TestBuildMissingFile(t *testing.T) {
	_, err := run(t, "build", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestInspect(t *testing.T) {
	scene := writeScene(t, testScene)
	dbPath := filepath.Join(t.TempDir(), "frames.db")

	_, err := run(t, "build", scene, "--capture", dbPath)
	require.NoError(t, err)

	out, err := run(t, "inspect", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "frame #1: 7 shapes")
	assert.Contains(t, out, "Composite #0 Union(1, 2)")
	assert.Contains(t, out, "valid: 5 roots")

	out, err = run(t, "inspect", dbPath, "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "#1  7 shapes")

	out, err = run(t, "inspect", dbPath, "--seq", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "frame #1")
}

func TestInspectEmptyDB(t *testing.T) {
	_, err := run(t, "inspect", filepath.Join(t.TempDir(), "empty.db"))
	require.ErrorIs(t, err, capture.ErrNoFrames)
}

func TestLayoutPrintsWGSL(t *testing.T) {
	out, err := run(t, "layout")
	require.NoError(t, err)
	assert.Contains(t, out, "struct Shape")
}

func TestLayoutWritesSPIRV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.spv")
	out, err := run(t, "layout", "--spirv", path)
	require.NoError(t, err)
	assert.Contains(t, out, "SPIR-V words")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), 4)
	assert.Equal(t, []byte{0x03, 0x02, 0x23, 0x07}, data[:4])
}
