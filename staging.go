// Copyright (c) 2024, The tinygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinygpu

import (
	"fmt"
	"unsafe"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// mapState tracks the readback state of one staging buffer.
type mapState int32

const (
	// mapIdle: no map in flight; PrepareStagingBuffer is allowed.
	mapIdle mapState = iota

	// mapRequested: MapAsync issued, result not yet consumed by a
	// read. A second prepare in this state is an [ErrDoubleMap].
	mapRequested

	// mapFailed: a map completed with a non-success status. The
	// staging buffer is unusable; re-add it to recover.
	mapFailed
)

// stagingBuffer is a CPU-readable shadow of a device buffer, with a
// single-slot channel bridging the asynchronous map callback to a
// blocking read. At most one map is in flight per staging buffer, so
// a receive on done always observes the most recent request.
type stagingBuffer struct {
	name   string
	size   uint64
	buffer *wgpu.Buffer
	state  mapState
	done   chan wgpu.BufferMapAsyncStatus
}

func (sb *stagingBuffer) Release() {
	if sb.buffer != nil {
		sb.buffer.Release()
		sb.buffer = nil
	}
}

// AddStagingBuffer creates a CPU-readable staging buffer shadowing
// the registered buffer of the same name, with the same size, and
// registers it in the staging namespace. Re-adding under an existing
// name replaces the staging buffer and resets its readback state.
func (pr *Program) AddStagingBuffer(name string) error {
	bf, err := pr.Buffer(name)
	if err != nil {
		return errors.Log(err)
	}
	buf, err := pr.Device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: name + " staging",
		Size:  bf.Size,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return errors.Log(err)
	}
	setm(&pr.staging, name, &stagingBuffer{
		name:   name,
		size:   bf.Size,
		buffer: buf,
		done:   make(chan wgpu.BufferMapAsyncStatus, 1),
	})
	return nil
}

// StagingBuffer returns the underlying GPU staging buffer registered
// under name, for use in command encoding.
func (pr *Program) StagingBuffer(name string) (*wgpu.Buffer, error) {
	sb, err := getm(pr.staging, "staging buffer", name)
	if err != nil {
		return nil, err
	}
	return sb.buffer, nil
}

// CopyBufferToStaging encodes a full copy from the named buffer to
// its staging buffer. The source buffer must have CopySrc usage.
func (pr *Program) CopyBufferToStaging(cmd *wgpu.CommandEncoder, name string) error {
	bf, err := pr.Buffer(name)
	if err != nil {
		return errors.Log(err)
	}
	sb, err := getm(pr.staging, "staging buffer", name)
	if err != nil {
		return errors.Log(err)
	}
	cmd.CopyBufferToBuffer(bf.buffer, 0, sb.buffer, 0, sb.size)
	return nil
}

// PrepareStagingBuffer requests an asynchronous map of the named
// staging buffer for reading. The map result is delivered by the
// device: call [Device.WaitDone] (or poll) after submitting the copy,
// then consume the result with [Program.ReadStagingBuffer]. Calling
// this again before the result is consumed returns [ErrDoubleMap].
func (pr *Program) PrepareStagingBuffer(name string) error {
	sb, err := getm(pr.staging, "staging buffer", name)
	if err != nil {
		return errors.Log(err)
	}
	switch sb.state {
	case mapRequested:
		return errors.Log(fmt.Errorf("%w: staging buffer %q", ErrDoubleMap, name))
	case mapFailed:
		return errors.Log(fmt.Errorf("%w: staging buffer %q: unusable after failed map, re-add it", ErrMapFailed, name))
	}
	err = sb.buffer.MapAsync(wgpu.MapModeRead, 0, sb.size, func(status wgpu.BufferMapAsyncStatus) {
		sb.done <- status
	})
	if err != nil {
		sb.state = mapFailed
		return errors.Log(fmt.Errorf("%w: staging buffer %q: %w", ErrMapFailed, name, err))
	}
	sb.state = mapRequested
	return nil
}

// ReadStagingBuffer blocks until the map requested by
// [Program.PrepareStagingBuffer] completes, then copies the mapped
// contents into dst and unmaps the buffer, returning it to the idle
// state. dst must be exactly the staging buffer's size. The map
// callback only runs while the device is polled, so submit the copy
// and call [Device.WaitDone] before reading, or this will block
// indefinitely.
//
// Each staging buffer has its own completion channel, so different
// staging buffers can be read from different goroutines; a single
// staging buffer must not be prepared or read concurrently.
func (pr *Program) ReadStagingBuffer(name string, dst []byte) error {
	sb, err := getm(pr.staging, "staging buffer", name)
	if err != nil {
		return errors.Log(err)
	}
	if sb.state != mapRequested {
		if sb.state == mapFailed {
			return errors.Log(fmt.Errorf("%w: staging buffer %q: unusable after failed map, re-add it", ErrMapFailed, name))
		}
		return errors.Log(fmt.Errorf("%w: staging buffer %q", ErrNotPrepared, name))
	}
	status := <-sb.done
	return errors.Log(sb.finishRead(status, dst))
}

// ReadStagingBufferNonBlocking is like [Program.ReadStagingBuffer]
// but returns immediately with ok == false if the map has not
// completed yet, leaving the request in flight.
func (pr *Program) ReadStagingBufferNonBlocking(name string, dst []byte) (ok bool, err error) {
	sb, err := getm(pr.staging, "staging buffer", name)
	if err != nil {
		return false, errors.Log(err)
	}
	if sb.state != mapRequested {
		if sb.state == mapFailed {
			return false, errors.Log(fmt.Errorf("%w: staging buffer %q: unusable after failed map, re-add it", ErrMapFailed, name))
		}
		return false, errors.Log(fmt.Errorf("%w: staging buffer %q", ErrNotPrepared, name))
	}
	select {
	case status := <-sb.done:
		return true, errors.Log(sb.finishRead(status, dst))
	default:
		return false, nil
	}
}

// finishRead consumes a delivered map status: on success it copies
// the mapped range into dst and unmaps; on failure it poisons the
// staging buffer.
func (sb *stagingBuffer) finishRead(status wgpu.BufferMapAsyncStatus, dst []byte) error {
	if status != wgpu.BufferMapAsyncStatusSuccess {
		sb.state = mapFailed
		return fmt.Errorf("%w: staging buffer %q: status %v", ErrMapFailed, sb.name, status)
	}
	if uint64(len(dst)) != sb.size {
		// Result stays consumable: the caller can retry with a
		// correctly sized destination before unmapping.
		sb.done <- status
		return fmt.Errorf("%w: staging buffer %q: dst is %d bytes, want %d", ErrInvalidSpec, sb.name, len(dst), sb.size)
	}
	data := sb.buffer.GetMappedRange(0, uint(sb.size))
	copy(dst, data)
	sb.buffer.Unmap()
	sb.state = mapIdle
	return nil
}

// ReadStagingInto blocks on the named staging buffer's map and copies
// its contents into the given slice of fixed-size values, which must
// exactly cover the buffer; a dst covering the wrong number of bytes
// is an [ErrInvalidSpec] error, reported before the map result is
// consumed.
func ReadStagingInto[E any](pr *Program, name string, dst []E) error {
	sb, err := getm(pr.staging, "staging buffer", name)
	if err != nil {
		return errors.Log(err)
	}
	var zero E
	if covers := uint64(len(dst)) * uint64(unsafe.Sizeof(zero)); covers != sb.size {
		return errors.Log(fmt.Errorf("%w: staging buffer %q: dst covers %d bytes, want %d",
			ErrInvalidSpec, name, covers, sb.size))
	}
	bytes := make([]byte, sb.size)
	if err := pr.ReadStagingBuffer(name, bytes); err != nil {
		return err
	}
	copy(dst, wgpu.FromBytes[E](bytes))
	return nil
}
