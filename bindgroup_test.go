// Copyright (c) 2024, The tinygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinygpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

// bindTestProgram has one of each bindable resource registered,
// without any GPU objects behind them.
func bindTestProgram() *Program {
	pr := &Program{Name: "test"}
	setm(&pr.buffers, "storage", &Buffer{Name: "storage", Size: 512, Usage: wgpu.BufferUsageStorage})
	setm(&pr.buffers, "uniform", &Buffer{Name: "uniform", Size: 64, Usage: wgpu.BufferUsageUniform})
	setm(&pr.textures, "image", &Texture{Name: "image", Format: wgpu.TextureFormatRGBA8Unorm, view: &wgpu.TextureView{}})
	setm(&pr.textures, "field", &Texture{Name: "field", Format: wgpu.TextureFormatRGBA32Float, view: &wgpu.TextureView{}})
	setm(&pr.samplers, "linear", &wgpu.Sampler{})
	return pr
}

func TestBindGroupEntries(t *testing.T) {
	pr := bindTestProgram()
	layouts, groups, err := pr.bindGroupEntries([]BindGroupItem{
		StorageBufferItem{Name: "storage", MinBindingSize: 4},
		UniformBufferItem{Name: "uniform", MinBindingSize: 64},
		TextureItem{Name: "image"},
		StorageTextureItem{Name: "field", Access: wgpu.StorageTextureAccessWriteOnly},
		SamplerItem{Name: "linear"},
	})
	assert.NoError(t, err)
	assert.Len(t, layouts, 5)
	assert.Len(t, groups, 5)

	// binding slots are positional in both entry lists
	for i := range layouts {
		assert.Equal(t, uint32(i), layouts[i].Binding)
		assert.Equal(t, uint32(i), groups[i].Binding)
	}

	assert.Equal(t, wgpu.BufferBindingTypeStorage, layouts[0].Buffer.Type)
	assert.Equal(t, uint64(4), layouts[0].Buffer.MinBindingSize)
	assert.Equal(t, storageVisibility, layouts[0].Visibility)
	assert.Equal(t, uint64(wgpu.WholeSize), uint64(groups[0].Size))

	assert.Equal(t, wgpu.BufferBindingTypeUniform, layouts[1].Buffer.Type)
	assert.Equal(t, allVisibility, layouts[1].Visibility)

	assert.Equal(t, wgpu.TextureSampleTypeFloat, layouts[2].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, layouts[2].Texture.ViewDimension)
	assert.Equal(t, allVisibility, layouts[2].Visibility)
	assert.NotNil(t, groups[2].TextureView)

	assert.Equal(t, wgpu.StorageTextureAccessWriteOnly, layouts[3].StorageTexture.Access)
	assert.Equal(t, wgpu.TextureFormatRGBA32Float, layouts[3].StorageTexture.Format)
	assert.Equal(t, storageVisibility, layouts[3].Visibility)

	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, layouts[4].Sampler.Type)
	assert.NotNil(t, groups[4].Sampler)
}

func TestBindGroupReadOnlyStorage(t *testing.T) {
	pr := bindTestProgram()
	layouts, _, err := pr.bindGroupEntries([]BindGroupItem{
		StorageBufferItem{Name: "storage", MinBindingSize: 4, ReadOnly: true},
	})
	assert.NoError(t, err)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, layouts[0].Buffer.Type)
}

func TestBindGroupZeroMinSize(t *testing.T) {
	pr := bindTestProgram()
	_, _, err := pr.bindGroupEntries([]BindGroupItem{
		StorageBufferItem{Name: "storage"},
	})
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.Contains(t, err.Error(), "MinBindingSize")

	_, _, err = pr.bindGroupEntries([]BindGroupItem{
		UniformBufferItem{Name: "uniform"},
	})
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestBindGroupMissingResource(t *testing.T) {
	pr := bindTestProgram()
	_, _, err := pr.bindGroupEntries([]BindGroupItem{
		StorageBufferItem{Name: "storage", MinBindingSize: 4},
		TextureItem{Name: "nope"},
	})
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Contains(t, err.Error(), "item 1")
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestAddBindGroupNoPartial(t *testing.T) {
	// a failed add registers neither the layout nor the group
	pr := bindTestProgram()
	err := pr.AddBindGroup("group",
		StorageBufferItem{Name: "storage", MinBindingSize: 4},
		TextureItem{Name: "nope"})
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Empty(t, pr.bindGroupLayouts)
	assert.Empty(t, pr.bindGroups)

	err = pr.AddBindGroup("group",
		StorageBufferItem{Name: "storage"})
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.Empty(t, pr.bindGroupLayouts)
	assert.Empty(t, pr.bindGroups)
}

func TestBindGroupTextureWithoutView(t *testing.T) {
	pr := bindTestProgram()
	setm(&pr.textures, "raw", &Texture{Name: "raw", Format: wgpu.TextureFormatRGBA8Unorm})
	_, _, err := pr.bindGroupEntries([]BindGroupItem{
		TextureItem{Name: "raw"},
	})
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.Contains(t, err.Error(), "no view")
}

func TestSampleType(t *testing.T) {
	assert.Equal(t, wgpu.TextureSampleTypeFloat, SampleType(wgpu.TextureFormatRGBA8Unorm))
	assert.Equal(t, wgpu.TextureSampleTypeFloat, SampleType(wgpu.TextureFormatRGBA16Float))
	assert.Equal(t, wgpu.TextureSampleTypeUnfilterableFloat, SampleType(wgpu.TextureFormatR32Float))
	assert.Equal(t, wgpu.TextureSampleTypeUint, SampleType(wgpu.TextureFormatR32Uint))
	assert.Equal(t, wgpu.TextureSampleTypeSint, SampleType(wgpu.TextureFormatRGBA8Sint))
	assert.Equal(t, wgpu.TextureSampleTypeDepth, SampleType(wgpu.TextureFormatDepth32Float))
}
