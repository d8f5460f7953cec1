// Copyright 2025 Axon ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the channel-first float32 tensor type the
// Axon operators read inputs from and write results into.
//
// # Overview
//
// Axon operators exchange data through dense row-major float32 tensors.
// Convolution and pooling inputs use channel-first layout:
// [batch, channel, height, width]. Tensors are views from the engine's
// perspective: operators read shapes and data and resize outputs, but
// never retain or free a tensor.
//
// # Basic Usage
//
//	import "github.com/axon-ml/axon/tensor"
//
//	x, err := tensor.New(tensor.Shape{1, 3, 8, 8})
//	if err != nil {
//	    // handle invalid shape
//	}
//	copy(x.Data(), pixels)
package tensor
