// Copyright (c) 2024, The tinygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinygpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Shader stage visibility assigned to bind group entries. Storage
// buffers and storage textures are not visible to the vertex stage,
// where writable bindings are generally unsupported.
var (
	storageVisibility = wgpu.ShaderStageCompute | wgpu.ShaderStageFragment
	allVisibility     = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment | wgpu.ShaderStageCompute
)

// BindGroupItem is one entry in a declarative bind group
// specification passed to [Program.AddBindGroup]. The binding slot of
// each item is its position in the list. Implementations are
// [StorageBufferItem], [UniformBufferItem], [TextureItem],
// [StorageTextureItem], and [SamplerItem].
type BindGroupItem interface {
	bindGroupItem()
}

// StorageBufferItem binds the named buffer as a storage buffer,
// visible to the compute and fragment stages.
type StorageBufferItem struct {
	// Name of a registered buffer.
	Name string

	// MinBindingSize is the minimum buffer size in bytes required by
	// the shader. Must be > 0.
	MinBindingSize uint64

	// ReadOnly binds the buffer as read-only storage.
	ReadOnly bool
}

// UniformBufferItem binds the named buffer as a uniform buffer,
// visible to all shader stages.
type UniformBufferItem struct {
	// Name of a registered buffer.
	Name string

	// MinBindingSize is the minimum buffer size in bytes required by
	// the shader. Must be > 0.
	MinBindingSize uint64
}

// TextureItem binds the named texture for sampling, visible to all
// shader stages. The sample type is derived from the texture format
// by [SampleType].
type TextureItem struct {
	// Name of a registered texture.
	Name string
}

// StorageTextureItem binds the named texture as a storage texture,
// visible to the compute and fragment stages. The format is taken
// from the texture.
type StorageTextureItem struct {
	// Name of a registered texture.
	Name string

	// Access is the storage access mode.
	Access wgpu.StorageTextureAccess
}

// SamplerItem binds the named sampler, visible to all shader stages.
type SamplerItem struct {
	// Name of a registered sampler.
	Name string
}

func (StorageBufferItem) bindGroupItem()  {}
func (UniformBufferItem) bindGroupItem()  {}
func (TextureItem) bindGroupItem()        {}
func (StorageTextureItem) bindGroupItem() {}
func (SamplerItem) bindGroupItem()        {}

// bindGroupEntries derives the layout and group entries for the given
// items, resolving names against this program's registries. It
// creates no GPU objects, so a failure leaves no partial state.
func (pr *Program) bindGroupEntries(items []BindGroupItem) ([]wgpu.BindGroupLayoutEntry, []wgpu.BindGroupEntry, error) {
	layouts := make([]wgpu.BindGroupLayoutEntry, len(items))
	groups := make([]wgpu.BindGroupEntry, len(items))
	for i, item := range items {
		binding := uint32(i)
		switch it := item.(type) {
		case StorageBufferItem:
			bf, ok := pr.buffers[it.Name]
			if !ok {
				return nil, nil, fmt.Errorf("%w: item %d: buffer %q", ErrResourceNotFound, i, it.Name)
			}
			if it.MinBindingSize == 0 {
				return nil, nil, fmt.Errorf("%w: item %d: buffer %q: MinBindingSize must be > 0", ErrInvalidSpec, i, it.Name)
			}
			typ := wgpu.BufferBindingTypeStorage
			if it.ReadOnly {
				typ = wgpu.BufferBindingTypeReadOnlyStorage
			}
			layouts[i] = wgpu.BindGroupLayoutEntry{
				Binding:    binding,
				Visibility: storageVisibility,
				Buffer: wgpu.BufferBindingLayout{
					Type:           typ,
					MinBindingSize: it.MinBindingSize,
				},
			}
			groups[i] = wgpu.BindGroupEntry{
				Binding: binding,
				Buffer:  bf.buffer,
				Size:    wgpu.WholeSize,
			}
		case UniformBufferItem:
			bf, ok := pr.buffers[it.Name]
			if !ok {
				return nil, nil, fmt.Errorf("%w: item %d: buffer %q", ErrResourceNotFound, i, it.Name)
			}
			if it.MinBindingSize == 0 {
				return nil, nil, fmt.Errorf("%w: item %d: buffer %q: MinBindingSize must be > 0", ErrInvalidSpec, i, it.Name)
			}
			layouts[i] = wgpu.BindGroupLayoutEntry{
				Binding:    binding,
				Visibility: allVisibility,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: it.MinBindingSize,
				},
			}
			groups[i] = wgpu.BindGroupEntry{
				Binding: binding,
				Buffer:  bf.buffer,
				Size:    wgpu.WholeSize,
			}
		case TextureItem:
			tx, ok := pr.textures[it.Name]
			if !ok {
				return nil, nil, fmt.Errorf("%w: item %d: texture %q", ErrResourceNotFound, i, it.Name)
			}
			if tx.view == nil {
				return nil, nil, fmt.Errorf("%w: item %d: texture %q has no view: created without a binding usage", ErrInvalidSpec, i, it.Name)
			}
			layouts[i] = wgpu.BindGroupLayoutEntry{
				Binding:    binding,
				Visibility: allVisibility,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    SampleType(tx.Format),
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			}
			groups[i] = wgpu.BindGroupEntry{
				Binding:     binding,
				TextureView: tx.view,
			}
		case StorageTextureItem:
			tx, ok := pr.textures[it.Name]
			if !ok {
				return nil, nil, fmt.Errorf("%w: item %d: texture %q", ErrResourceNotFound, i, it.Name)
			}
			if tx.view == nil {
				return nil, nil, fmt.Errorf("%w: item %d: texture %q has no view: created without a binding usage", ErrInvalidSpec, i, it.Name)
			}
			layouts[i] = wgpu.BindGroupLayoutEntry{
				Binding:    binding,
				Visibility: storageVisibility,
				StorageTexture: wgpu.StorageTextureBindingLayout{
					Access:        it.Access,
					Format:        tx.Format,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			}
			groups[i] = wgpu.BindGroupEntry{
				Binding:     binding,
				TextureView: tx.view,
			}
		case SamplerItem:
			smp, ok := pr.samplers[it.Name]
			if !ok {
				return nil, nil, fmt.Errorf("%w: item %d: sampler %q", ErrResourceNotFound, i, it.Name)
			}
			layouts[i] = wgpu.BindGroupLayoutEntry{
				Binding:    binding,
				Visibility: allVisibility,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			}
			groups[i] = wgpu.BindGroupEntry{
				Binding: binding,
				Sampler: smp,
			}
		default:
			return nil, nil, fmt.Errorf("%w: item %d: unknown item type %T", ErrInvalidSpec, i, item)
		}
	}
	return layouts, groups, nil
}

// AddBindGroup derives a bind group layout and bind group from the
// given items and registers both under name. Binding slots are
// assigned positionally: item i gets @binding(i). On any error,
// nothing is registered.
func (pr *Program) AddBindGroup(name string, items ...BindGroupItem) error {
	layoutEntries, groupEntries, err := pr.bindGroupEntries(items)
	if err != nil {
		return errors.Log(err)
	}
	layout, err := pr.Device.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   name,
		Entries: layoutEntries,
	})
	if err != nil {
		return errors.Log(err)
	}
	group, err := pr.Device.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   name,
		Layout:  layout,
		Entries: groupEntries,
	})
	if err != nil {
		layout.Release()
		return errors.Log(err)
	}
	setm(&pr.bindGroupLayouts, name, layout)
	setm(&pr.bindGroups, name, group)
	return nil
}
