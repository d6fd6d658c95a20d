// Copyright (c) 2024, The tinygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinygpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Buffer is a named GPU buffer with its creation parameters, so that
// bind group derivation and staging can recover the size and usage
// without querying the device.
type Buffer struct {
	// Name is the registry name, also used as the GPU-side label.
	Name string

	// Size is the buffer size in bytes.
	Size uint64

	// Usage flags the buffer was created with.
	Usage wgpu.BufferUsage

	buffer *wgpu.Buffer
}

// Object returns the underlying GPU buffer, for use in command
// encoding.
func (bf *Buffer) Object() *wgpu.Buffer {
	return bf.buffer
}

// Release releases the underlying GPU buffer.
func (bf *Buffer) Release() {
	if bf.buffer != nil {
		bf.buffer.Release()
		bf.buffer = nil
	}
}

// AddBuffer creates a buffer of the given size and usage and
// registers it under name. A zero size is an [ErrInvalidSpec] error.
func (pr *Program) AddBuffer(name string, usage wgpu.BufferUsage, size uint64) error {
	if size == 0 {
		return errors.Log(fmt.Errorf("%w: buffer %q: size must be > 0", ErrInvalidSpec, name))
	}
	buf, err := pr.Device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: name,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return errors.Log(err)
	}
	setm(&pr.buffers, name, &Buffer{Name: name, Size: size, Usage: usage, buffer: buf})
	return nil
}

// AddBufferInit creates a buffer initialized with the given contents
// and registers it under name.
func (pr *Program) AddBufferInit(name string, usage wgpu.BufferUsage, contents []byte) error {
	if len(contents) == 0 {
		return errors.Log(fmt.Errorf("%w: buffer %q: contents must be non-empty", ErrInvalidSpec, name))
	}
	buf, err := pr.Device.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name,
		Contents: contents,
		Usage:    usage,
	})
	if err != nil {
		return errors.Log(err)
	}
	setm(&pr.buffers, name, &Buffer{Name: name, Size: uint64(len(contents)), Usage: usage, buffer: buf})
	return nil
}

// WriteBuffer writes data into the named buffer at the given byte
// offset, via the queue.
func (pr *Program) WriteBuffer(name string, offset uint64, data []byte) error {
	bf, err := pr.Buffer(name)
	if err != nil {
		return errors.Log(err)
	}
	if offset+uint64(len(data)) > bf.Size {
		return errors.Log(fmt.Errorf("%w: buffer %q: write of %d bytes at offset %d exceeds size %d",
			ErrInvalidSpec, name, len(data), offset, bf.Size))
	}
	return pr.Device.Queue.WriteBuffer(bf.buffer, offset, data)
}

// SetBufferFrom writes the given slice of fixed-size values into the
// named buffer, starting at offset 0.
func SetBufferFrom[E any](pr *Program, name string, from []E) error {
	return pr.WriteBuffer(name, 0, wgpu.ToBytes(from))
}
