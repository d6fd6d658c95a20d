// Copyright (c) 2024, The tinygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinygpu

import (
	"log/slog"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// GPU holds the WebGPU instance and the adapter selected from it.
// One GPU can back any number of [Program]s, each with its own
// logical device.
type GPU struct {
	// Instance is the top-level WebGPU instance.
	Instance *wgpu.Instance

	// Adapter is the physical adapter selected for this GPU.
	Adapter *wgpu.Adapter

	// Info describes the selected adapter, for diagnostics.
	Info wgpu.AdapterInfo
}

// NewGPU creates a WebGPU instance and requests a high-performance
// adapter from it.
func NewGPU() (*GPU, error) {
	gp := &GPU{}
	gp.Instance = wgpu.CreateInstance(nil)
	adapter, err := gp.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, errors.Log(err)
	}
	gp.Adapter = adapter
	gp.Info = adapter.GetInfo()
	slog.Debug("tinygpu: selected adapter", "name", gp.Info.Name,
		"vendor", gp.Info.VendorName, "backend", gp.Info.BackendType)
	return gp, nil
}

// Release releases the adapter and instance. Any [Device] created
// from this GPU must be released first.
func (gp *GPU) Release() {
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
	if gp.Instance != nil {
		gp.Instance.Release()
		gp.Instance = nil
	}
}

// Device is a logical WebGPU device and its queue.
type Device struct {
	// Device is the logical device.
	Device *wgpu.Device

	// Queue is the default queue of the device.
	Queue *wgpu.Queue
}

// NewDevice requests a new logical device from the given GPU's
// adapter, with default features and limits.
func NewDevice(gp *GPU) (*Device, error) {
	device, err := gp.Adapter.RequestDevice(nil)
	if err != nil {
		return nil, errors.Log(err)
	}
	return &Device{Device: device, Queue: device.GetQueue()}, nil
}

// WaitDone blocks until all submitted work on this device has
// completed, driving any pending map callbacks in the process.
func (dv *Device) WaitDone() {
	dv.Device.Poll(true, nil)
}

// Release releases the device and its queue.
func (dv *Device) Release() {
	if dv.Device == nil {
		return
	}
	dv.Device.Poll(true, nil)
	dv.Queue.Release()
	dv.Device.Release()
	dv.Device = nil
	dv.Queue = nil
}
