// Copyright (c) 2024, The tinygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinygpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestComputePipelinesMissingModule(t *testing.T) {
	pr := &Program{Name: "test"}
	err := pr.AddComputePipelines("nope", nil, []ComputeKernel{{Name: "k", EntryPoint: "main"}}, nil)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Contains(t, err.Error(), `module "nope"`)
	assert.Empty(t, pr.computePipelines)
}

func TestComputePipelinesMissingBindGroup(t *testing.T) {
	pr := &Program{Name: "test"}
	setm(&pr.modules, "compute", &wgpu.ShaderModule{})
	err := pr.AddComputePipelines("compute", []string{"nope"}, []ComputeKernel{{Name: "k", EntryPoint: "main"}}, nil)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Contains(t, err.Error(), "group 0")
	assert.Contains(t, err.Error(), `"nope"`)
	assert.Empty(t, pr.computePipelines)
}

func TestRenderPipelinesMissingBindGroup(t *testing.T) {
	pr := &Program{Name: "test"}
	setm(&pr.modules, "render", &wgpu.ShaderModule{})
	err := pr.AddRenderPipelines("render", []string{"a", "nope"},
		[]RenderKernel{{Name: "k", VertexEntry: "vs", FragmentEntry: "fs"}},
		nil, []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm}, nil)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Contains(t, err.Error(), "group 0")
	assert.Empty(t, pr.renderPipelines)
}
