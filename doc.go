// Copyright (c) 2024, The tinygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tinygpu provides a small declarative layer over WebGPU for
// compute and render work, via the cogentcore/webgpu bindings.
// All GPU resources (shader modules, buffers, textures, samplers,
// bind groups, pipelines, staging buffers) are created through a
// [Program] and retrieved by name, so that shader code and Go code
// can refer to the same resources with the same labels.
//
// The typical flow is:
//   - [NewGPU] to get an adapter, [NewProgram] to get a device-backed
//     program.
//   - Program.AddModule, AddBuffer, AddTexture, AddSampler to register
//     resources.
//   - Program.AddBindGroup with a list of [BindGroupItem] values,
//     which derives both the bind group layout and the bind group in
//     one step, with binding slots assigned positionally.
//   - Program.AddComputePipelines / AddRenderPipelines to compile
//     entry points against those bind group layouts.
//   - Encode passes using the named pipelines and bind groups, then
//     read results back through the staging buffer protocol:
//     AddStagingBuffer, CopyBufferToStaging, PrepareStagingBuffer,
//     and ReadStagingBuffer.
package tinygpu
