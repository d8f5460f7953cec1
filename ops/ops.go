// Copyright 2025 Axon ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import (
	"github.com/axon-ml/axon/internal/kernels"
	"github.com/axon-ml/axon/internal/ops"
)

// Args is the named-argument configuration bag operators are
// constructed from.
type Args = ops.Args

// Conv is the accelerated 2D convolution operator.
type Conv = ops.Conv

// MaxPool is the accelerated 2D max-pooling operator.
type MaxPool = ops.MaxPool

// Algorithm selects the convolution algorithm.
type Algorithm = kernels.Algorithm

// TransformStrategy selects the transform-domain memory layout for the
// single-sample convolution path.
type TransformStrategy = kernels.TransformStrategy

// Convolution algorithms.
const (
	Auto          = kernels.Auto
	WinogradWT8x8 = kernels.WinogradWT8x8
	FT16x16       = kernels.FT16x16
	FT8x8         = kernels.FT8x8
)

// Transform strategies.
const (
	BlockBased = kernels.BlockBased
	TupleBased = kernels.TupleBased
)

// Operator failure classes.
var (
	ErrUnsupportedConfig = ops.ErrUnsupportedConfig
	ErrInvalidArg        = ops.ErrInvalidArg
	ErrBadShape          = ops.ErrBadShape
)

// NewConv constructs a convolution operator from an argument bag.
//
// Example:
//
//	conv, err := ops.NewConv(ops.Args{"kernel": 5, "stride": 1, "pad": 2, "algo": "FT8"})
func NewConv(args Args) (*Conv, error) {
	return ops.NewConv(args)
}

// NewMaxPool constructs a max-pooling operator from an argument bag.
// Only the fixed-function configuration (2x2 kernel, stride 2, zero
// padding) is accepted.
//
// Example:
//
//	pool, err := ops.NewMaxPool(ops.Args{"kernel": 2, "stride": 2})
func NewMaxPool(args Args) (*MaxPool, error) {
	return ops.NewMaxPool(args)
}
