// Copyright (c) 2024, The tinygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinygpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ComputeKernel names one compute entry point to compile into a
// pipeline. Name is the registry name of the resulting pipeline, and
// EntryPoint is the @compute function in the shader module.
type ComputeKernel struct {
	Name       string
	EntryPoint string
}

// RenderKernel names one vertex/fragment entry point pair to compile
// into a render pipeline. Name is the registry name of the resulting
// pipeline.
type RenderKernel struct {
	Name          string
	VertexEntry   string
	FragmentEntry string
}

// pipelineLayout resolves the named bind group layouts in order and
// creates a pipeline layout over them.
func (pr *Program) pipelineLayout(label string, bindGroupNames []string, push []wgpu.PushConstantRange) (*wgpu.PipelineLayout, error) {
	layouts := make([]*wgpu.BindGroupLayout, len(bindGroupNames))
	for i, nm := range bindGroupNames {
		bgl, ok := pr.bindGroupLayouts[nm]
		if !ok {
			return nil, fmt.Errorf("%w: group %d: bind group layout %q", ErrResourceNotFound, i, nm)
		}
		layouts[i] = bgl
	}
	return pr.Device.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:              label,
		BindGroupLayouts:   layouts,
		PushConstantRanges: push,
	})
}

// AddComputePipelines compiles each kernel of the given shader module
// into a compute pipeline and registers it under the kernel's Name.
// All pipelines in one call share a single pipeline layout built from
// the named bind groups, in order: bindGroupNames[i] is @group(i).
// On any error, nothing is registered.
func (pr *Program) AddComputePipelines(moduleName string, bindGroupNames []string, kernels []ComputeKernel, push []wgpu.PushConstantRange) error {
	module, err := pr.Module(moduleName)
	if err != nil {
		return errors.Log(err)
	}
	layout, err := pr.pipelineLayout(moduleName, bindGroupNames, push)
	if err != nil {
		return errors.Log(err)
	}
	defer layout.Release()
	built := make([]*wgpu.ComputePipeline, len(kernels))
	for i, k := range kernels {
		pl, err := pr.Device.Device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
			Label:  k.Name,
			Layout: layout,
			Compute: wgpu.ProgrammableStageDescriptor{
				Module:     module,
				EntryPoint: k.EntryPoint,
			},
		})
		if err != nil {
			for _, p := range built[:i] {
				p.Release()
			}
			return errors.Log(fmt.Errorf("compute pipeline %q: %w", k.Name, err))
		}
		built[i] = pl
	}
	for i, k := range kernels {
		setm(&pr.computePipelines, k.Name, built[i])
	}
	return nil
}

// AddRenderPipelines compiles each kernel of the given shader module
// into a render pipeline and registers it under the kernel's Name.
// All pipelines in one call share a single pipeline layout built from
// the named bind groups, in order: bindGroupNames[i] is @group(i).
// Each pipeline renders triangle lists without culling, single
// sampled, with replace blending into the given color targets.
// On any error, nothing is registered.
func (pr *Program) AddRenderPipelines(moduleName string, bindGroupNames []string, kernels []RenderKernel, push []wgpu.PushConstantRange, colorFormats []wgpu.TextureFormat, vertexLayouts []wgpu.VertexBufferLayout) error {
	module, err := pr.Module(moduleName)
	if err != nil {
		return errors.Log(err)
	}
	layout, err := pr.pipelineLayout(moduleName, bindGroupNames, push)
	if err != nil {
		return errors.Log(err)
	}
	defer layout.Release()
	targets := make([]wgpu.ColorTargetState, len(colorFormats))
	for i, f := range colorFormats {
		targets[i] = wgpu.ColorTargetState{
			Format:    f,
			Blend:     &wgpu.BlendStateReplace,
			WriteMask: wgpu.ColorWriteMaskAll,
		}
	}
	built := make([]*wgpu.RenderPipeline, len(kernels))
	for i, k := range kernels {
		pl, err := pr.Device.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
			Label:  k.Name,
			Layout: layout,
			Vertex: wgpu.VertexState{
				Module:     module,
				EntryPoint: k.VertexEntry,
				Buffers:    vertexLayouts,
			},
			Fragment: &wgpu.FragmentState{
				Module:     module,
				EntryPoint: k.FragmentEntry,
				Targets:    targets,
			},
			Primitive: wgpu.PrimitiveState{
				Topology:  wgpu.PrimitiveTopologyTriangleList,
				FrontFace: wgpu.FrontFaceCCW,
				CullMode:  wgpu.CullModeNone,
			},
			Multisample: wgpu.MultisampleState{
				Count: 1,
				Mask:  0xFFFFFFFF,
			},
		})
		if err != nil {
			for _, p := range built[:i] {
				p.Release()
			}
			return errors.Log(fmt.Errorf("render pipeline %q: %w", k.Name, err))
		}
		built[i] = pl
	}
	for i, k := range kernels {
		setm(&pr.renderPipelines, k.Name, built[i])
	}
	return nil
}
