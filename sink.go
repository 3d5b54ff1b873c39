// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

import "fmt"

// Sink receives serialized frames from Collection.Sync. How the bytes are
// persisted (GPU upload, file, database) is up to the implementation.
//
// WriteFrame must either accept the whole frame or return an error; the
// Collection stays dirty after an error so the next Sync retries.
type Sink interface {
	WriteFrame(f *Frame) error
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(f *Frame) error

// WriteFrame calls fn(f).
func (fn SinkFunc) WriteFrame(f *Frame) error {
	return fn(f)
}

// MultiSink returns a Sink that writes every frame to each of sinks in
// order, stopping at the first error.
func MultiSink(sinks ...Sink) Sink {
	all := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			all = append(all, s)
		}
	}
	return multiSink(all)
}

type multiSink []Sink

func (m multiSink) WriteFrame(f *Frame) error {
	for i, s := range m {
		if err := s.WriteFrame(f); err != nil {
			return fmt.Errorf("sink %d: %w", i, err)
		}
	}
	return nil
}

// Sync writes the tables to sink if anything changed since the last
// successful Sync, then clears the dirty flag. When nothing changed it
// returns immediately without serializing.
//
// All four tables and the header are handed to the sink together. If the
// sink fails the flag stays set and the error is returned; there is no retry.
func (c *Collection) Sync(sink Sink) error {
	if sink == nil {
		return ErrNoSink
	}
	if !c.dirty {
		return nil
	}
	f := c.Frame()
	if err := sink.WriteFrame(f); err != nil {
		return fmt.Errorf("csg: sync: %w", err)
	}
	c.dirty = false
	Logger().Debug("csg: synced",
		"shapes", len(c.shapes),
		"spheres", len(c.spheres),
		"cuboids", len(c.cuboids),
		"composites", len(c.composites),
		"bytes", f.Size())
	return nil
}
