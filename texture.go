// Copyright (c) 2024, The tinygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinygpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Texture is a named 2D GPU texture with its creation parameters.
// If the texture was created with a binding usage, a full view of it
// is created alongside and used in bind group entries.
type Texture struct {
	// Name is the registry name, also used as the GPU-side label.
	Name string

	// Format is the texel format.
	Format wgpu.TextureFormat

	// Size is the texture extent; Depth is always 1.
	Size wgpu.Extent3D

	// Usage flags the texture was created with.
	Usage wgpu.TextureUsage

	texture *wgpu.Texture
	view    *wgpu.TextureView
}

// Object returns the underlying GPU texture.
func (tx *Texture) Object() *wgpu.Texture {
	return tx.texture
}

// View returns the full view of the texture, or nil if the texture
// was created without a binding usage.
func (tx *Texture) View() *wgpu.TextureView {
	return tx.view
}

// Release releases the view and the underlying GPU texture.
func (tx *Texture) Release() {
	if tx.view != nil {
		tx.view.Release()
		tx.view = nil
	}
	if tx.texture != nil {
		tx.texture.Release()
		tx.texture = nil
	}
}

// AddTexture creates a 2D texture of the given size, format, and
// usage and registers it under name. If usage includes TextureBinding
// or StorageBinding, a full default view is created as well, so the
// texture can appear in bind group entries.
func (pr *Program) AddTexture(name string, usage wgpu.TextureUsage, format wgpu.TextureFormat, width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Log(fmt.Errorf("%w: texture %q: size %dx%d must be positive",
			ErrInvalidSpec, name, width, height))
	}
	sz := wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}
	tex, err := pr.Device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         name,
		Size:          sz,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return errors.Log(err)
	}
	tx := &Texture{Name: name, Format: format, Size: sz, Usage: usage, texture: tex}
	if usage&(wgpu.TextureUsageTextureBinding|wgpu.TextureUsageStorageBinding) != 0 {
		view, err := tex.CreateView(nil)
		if err != nil {
			tex.Release()
			return errors.Log(err)
		}
		tx.view = view
	}
	setm(&pr.textures, name, tx)
	return nil
}

// samplerDescriptor returns the descriptor to create a sampler from,
// labeled with name. The given descriptor is copied, not mutated; nil
// yields a filtering sampler with linear min/mag filters and
// clamp-to-edge addressing.
func samplerDescriptor(name string, desc *wgpu.SamplerDescriptor) *wgpu.SamplerDescriptor {
	d := wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
	if desc != nil {
		d = *desc
	}
	d.Label = name
	return &d
}

// AddSampler creates a sampler from the given descriptor and
// registers it under name. The descriptor is not modified; a nil
// descriptor creates a filtering sampler with linear min/mag filters
// and clamp-to-edge addressing.
func (pr *Program) AddSampler(name string, desc *wgpu.SamplerDescriptor) error {
	smp, err := pr.Device.Device.CreateSampler(samplerDescriptor(name, desc))
	if err != nil {
		return errors.Log(err)
	}
	setm(&pr.samplers, name, smp)
	return nil
}
