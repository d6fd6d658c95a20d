// Copyright (c) 2024, The tinygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinygpu

import "github.com/cogentcore/webgpu/wgpu"

// SampleType returns the texture sample type implied by the given
// format, used for sampled texture bind group layout entries.
// 32-bit float formats are unfilterable without the float32-filterable
// feature, and depth formats sample as depth. Unrecognized formats
// default to filterable float.
func SampleType(format wgpu.TextureFormat) wgpu.TextureSampleType {
	switch format {
	case wgpu.TextureFormatR8Uint, wgpu.TextureFormatR16Uint,
		wgpu.TextureFormatRG8Uint, wgpu.TextureFormatR32Uint,
		wgpu.TextureFormatRG16Uint, wgpu.TextureFormatRGBA8Uint,
		wgpu.TextureFormatRG32Uint, wgpu.TextureFormatRGBA16Uint,
		wgpu.TextureFormatRGBA32Uint:
		return wgpu.TextureSampleTypeUint
	case wgpu.TextureFormatR8Sint, wgpu.TextureFormatR16Sint,
		wgpu.TextureFormatRG8Sint, wgpu.TextureFormatR32Sint,
		wgpu.TextureFormatRG16Sint, wgpu.TextureFormatRGBA8Sint,
		wgpu.TextureFormatRG32Sint, wgpu.TextureFormatRGBA16Sint,
		wgpu.TextureFormatRGBA32Sint:
		return wgpu.TextureSampleTypeSint
	case wgpu.TextureFormatR32Float, wgpu.TextureFormatRG32Float,
		wgpu.TextureFormatRGBA32Float:
		return wgpu.TextureSampleTypeUnfilterableFloat
	case wgpu.TextureFormatDepth16Unorm, wgpu.TextureFormatDepth24Plus,
		wgpu.TextureFormatDepth24PlusStencil8, wgpu.TextureFormatDepth32Float:
		return wgpu.TextureSampleTypeDepth
	default:
		return wgpu.TextureSampleTypeFloat
	}
}
