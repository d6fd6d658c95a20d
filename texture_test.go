// Copyright (c) 2024, The tinygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinygpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestSamplerDescriptor(t *testing.T) {
	in := &wgpu.SamplerDescriptor{
		MagFilter: wgpu.FilterModeNearest,
		MinFilter: wgpu.FilterModeNearest,
	}
	d := samplerDescriptor("pixelated", in)
	assert.Equal(t, "pixelated", d.Label)
	assert.Equal(t, wgpu.FilterModeNearest, d.MagFilter)
	// caller's descriptor is untouched
	assert.Empty(t, in.Label)

	d = samplerDescriptor("default", nil)
	assert.Equal(t, "default", d.Label)
	assert.Equal(t, wgpu.FilterModeLinear, d.MinFilter)
	assert.Equal(t, wgpu.AddressModeClampToEdge, d.AddressModeU)
}
