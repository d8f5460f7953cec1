// Copyright 2025 Axon ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/axon-ml/axon/internal/tensor"

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Tensor is a dense row-major float32 tensor.
type Tensor = tensor.Tensor

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Tensor, error) {
	return tensor.New(shape)
}

// FromSlice creates a tensor with the given shape backed by data.
// The slice is used directly, not copied.
func FromSlice(shape Shape, data []float32) (*Tensor, error) {
	return tensor.FromSlice(shape, data)
}
