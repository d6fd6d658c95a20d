// Copyright (c) 2024, The tinygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinygpu

import (
	"slices"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/indent"
	"github.com/cogentcore/webgpu/wgpu"
)

// Program owns a set of named GPU resources and the logical device
// they live on. Each resource category (modules, buffers, textures,
// samplers, bind groups, pipelines, staging buffers) is a separate
// namespace, so the same name can be reused across categories; the
// worked examples use one name for a storage buffer, its staging
// buffer, and the bind group that binds it.
//
// Adding a resource under an existing name replaces the previous
// entry in that category. The replaced GPU object is not released:
// already-built bind groups and pipelines may still reference it, and
// the caller decides when it is safe to release.
//
// A Program is not safe for concurrent mutation. Concurrent readback
// of different staging buffers is fine; see [Program.ReadStagingBuffer].
type Program struct {
	// Name is the overall name of this program, used in labels and
	// diagnostics.
	Name string

	// GPU is the instance and adapter this program was created from.
	GPU *GPU

	// Device is the logical device owned by this program. It is
	// released by [Program.Release].
	Device *Device

	modules          map[string]*wgpu.ShaderModule
	buffers          map[string]*Buffer
	textures         map[string]*Texture
	samplers         map[string]*wgpu.Sampler
	bindGroupLayouts map[string]*wgpu.BindGroupLayout
	bindGroups       map[string]*wgpu.BindGroup
	computePipelines map[string]*wgpu.ComputePipeline
	renderPipelines  map[string]*wgpu.RenderPipeline
	staging          map[string]*stagingBuffer
}

// NewProgram returns a new Program with the given name, creating a
// new logical device on the given GPU. Any errors are automatically
// logged.
func NewProgram(gp *GPU, name string) *Program {
	pr := &Program{Name: name, GPU: gp}
	pr.Device = errors.Log1(NewDevice(gp))
	return pr
}

// setm stores v under name in *m, allocating the map on first use.
// An existing entry under the same name is replaced.
func setm[T any](m *map[string]T, name string, v T) {
	if *m == nil {
		*m = make(map[string]T)
	}
	(*m)[name] = v
}

// getm resolves name in m, returning a wrapped [ErrResourceNotFound]
// naming the category on failure.
func getm[T any](m map[string]T, category, name string) (T, error) {
	v, ok := m[name]
	if !ok {
		var zero T
		return zero, notFound(category, name)
	}
	return v, nil
}

// AddModule compiles the given WGSL source into a shader module and
// registers it under name.
func (pr *Program) AddModule(name, source string) error {
	mod, err := pr.Device.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
	})
	if err != nil {
		return errors.Log(err)
	}
	setm(&pr.modules, name, mod)
	return nil
}

// Module returns the shader module registered under name.
func (pr *Program) Module(name string) (*wgpu.ShaderModule, error) {
	return getm(pr.modules, "module", name)
}

// Buffer returns the buffer registered under name.
func (pr *Program) Buffer(name string) (*Buffer, error) {
	return getm(pr.buffers, "buffer", name)
}

// Texture returns the texture registered under name.
func (pr *Program) Texture(name string) (*Texture, error) {
	return getm(pr.textures, "texture", name)
}

// Sampler returns the sampler registered under name.
func (pr *Program) Sampler(name string) (*wgpu.Sampler, error) {
	return getm(pr.samplers, "sampler", name)
}

// BindGroupLayout returns the bind group layout registered under
// name by [Program.AddBindGroup].
func (pr *Program) BindGroupLayout(name string) (*wgpu.BindGroupLayout, error) {
	return getm(pr.bindGroupLayouts, "bind group layout", name)
}

// BindGroup returns the bind group registered under name by
// [Program.AddBindGroup].
func (pr *Program) BindGroup(name string) (*wgpu.BindGroup, error) {
	return getm(pr.bindGroups, "bind group", name)
}

// ComputePipeline returns the compute pipeline registered under name
// by [Program.AddComputePipelines].
func (pr *Program) ComputePipeline(name string) (*wgpu.ComputePipeline, error) {
	return getm(pr.computePipelines, "compute pipeline", name)
}

// RenderPipeline returns the render pipeline registered under name
// by [Program.AddRenderPipelines].
func (pr *Program) RenderPipeline(name string) (*wgpu.RenderPipeline, error) {
	return getm(pr.renderPipelines, "render pipeline", name)
}

// NewCommandEncoder returns a new command encoder on this program's
// device.
func (pr *Program) NewCommandEncoder() (*wgpu.CommandEncoder, error) {
	enc, err := pr.Device.Device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, errors.Log(err)
	}
	return enc, nil
}

// Release releases all GPU resources owned by this program, then its
// device. Pipelines and bind groups are released before the resources
// they reference.
func (pr *Program) Release() {
	for _, pl := range pr.computePipelines {
		pl.Release()
	}
	for _, pl := range pr.renderPipelines {
		pl.Release()
	}
	for _, bg := range pr.bindGroups {
		bg.Release()
	}
	for _, bgl := range pr.bindGroupLayouts {
		bgl.Release()
	}
	for _, sb := range pr.staging {
		sb.Release()
	}
	for _, smp := range pr.samplers {
		smp.Release()
	}
	for _, tx := range pr.textures {
		tx.Release()
	}
	for _, bf := range pr.buffers {
		bf.Release()
	}
	for _, mod := range pr.modules {
		mod.Release()
	}
	pr.computePipelines = nil
	pr.renderPipelines = nil
	pr.bindGroups = nil
	pr.bindGroupLayouts = nil
	pr.staging = nil
	pr.samplers = nil
	pr.textures = nil
	pr.buffers = nil
	pr.modules = nil
	if pr.Device != nil {
		pr.Device.Release()
		pr.Device = nil
	}
}

// StringDoc returns a listing of all registered resources by
// category, for diagnostics.
func (pr *Program) StringDoc() string {
	ident := indent.Spaces
	var b strings.Builder
	b.WriteString("Program: " + pr.Name + "\n")
	category := func(name string, names []string) {
		b.WriteString(ident(1, 4) + name + ":\n")
		for _, nm := range names {
			b.WriteString(ident(2, 4) + nm + "\n")
		}
	}
	category("Modules", mapKeys(pr.modules))
	category("Buffers", mapKeys(pr.buffers))
	category("Textures", mapKeys(pr.textures))
	category("Samplers", mapKeys(pr.samplers))
	category("BindGroups", mapKeys(pr.bindGroups))
	category("ComputePipelines", mapKeys(pr.computePipelines))
	category("RenderPipelines", mapKeys(pr.renderPipelines))
	category("StagingBuffers", mapKeys(pr.staging))
	return b.String()
}

func mapKeys[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for nm := range m {
		names = append(names, nm)
	}
	slices.Sort(names)
	return names
}
