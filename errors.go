// Copyright (c) 2024, The tinygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinygpu

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by [Program] operations. Wrapped errors
// carry the resource category and name; match with [errors.Is].
var (
	// ErrResourceNotFound is returned when a name does not resolve
	// within the relevant resource category.
	ErrResourceNotFound = errors.New("tinygpu: resource not found")

	// ErrInvalidSpec is returned when a declarative specification is
	// invalid before any GPU object is created, e.g. a zero
	// MinBindingSize or a destination slice of the wrong length.
	ErrInvalidSpec = errors.New("tinygpu: invalid specification")

	// ErrMapFailed is returned when an asynchronous buffer map
	// completes with a non-success status. The staging buffer is
	// unusable afterward and must be re-added.
	ErrMapFailed = errors.New("tinygpu: buffer map failed")

	// ErrDoubleMap is returned by PrepareStagingBuffer when a map is
	// already in flight for the same staging buffer.
	ErrDoubleMap = errors.New("tinygpu: map already requested")

	// ErrNotPrepared is returned by ReadStagingBuffer when no map has
	// been requested for the staging buffer.
	ErrNotPrepared = errors.New("tinygpu: no map requested")
)

// notFound wraps [ErrResourceNotFound] with the category and name
// that failed to resolve.
func notFound(category, name string) error {
	return fmt.Errorf("%w: %s %q", ErrResourceNotFound, category, name)
}
