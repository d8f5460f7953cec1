// Copyright 2025 Axon ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops provides the accelerated 2D convolution and max-pooling
// operators of the Axon engine.
//
// # Overview
//
// Operators are constructed once from a named-argument configuration
// bag and are immutable afterwards. Each Run validates its input
// shapes, obtains the process-wide worker pool, and dispatches to the
// accelerated kernels, writing into a caller-supplied output tensor.
// All failures are fail-fast: configuration problems abort
// construction, shape violations and kernel errors abort the single
// invocation.
//
// # Basic Usage
//
//	import (
//	    "github.com/axon-ml/axon/ops"
//	    "github.com/axon-ml/axon/tensor"
//	)
//
//	conv, err := ops.NewConv(ops.Args{"kernel": 3, "pad": 1, "algo": "WINOGRAD"})
//	if err != nil {
//	    // unsupported configuration
//	}
//
//	y, _ := tensor.New(tensor.Shape{1})
//	err = conv.Run([]*tensor.Tensor{x, filter, bias}, []*tensor.Tensor{y})
//
// # Constraints
//
// Only channel-first [batch, channel, height, width] data is supported.
// Batched convolution (batch > 1) requires unit stride. Max pooling is
// fixed-function: 2x2 kernel, stride 2, no padding, even input
// dimensions.
package ops
