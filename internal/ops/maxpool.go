package ops

import (
	"fmt"

	"github.com/axon-ml/axon/internal/kernels"
	"github.com/axon-ml/axon/internal/tensor"
)

// MaxPool is the accelerated 2D max-pooling operator.
//
// The fixed-function pooling kernel only implements exact 2x
// downsampling: kernel (2, 2), stride (2, 2), no padding, even input
// dimensions. The first three are enforced once at construction; input
// parity is checked per run.
type MaxPool struct {
	convPoolArgs
}

// NewMaxPool constructs a max-pooling operator from an argument bag
// (shared spatial keys only; see parseConvPoolArgs). Any configuration
// other than a 2x2 kernel with stride 2 and zero padding is rejected.
func NewMaxPool(args Args) (*MaxPool, error) {
	base, err := parseConvPoolArgs(args)
	if err != nil {
		return nil, err
	}

	if base.kernelH != 2 || base.kernelW != 2 {
		return nil, fmt.Errorf("%w: max pooling only supports a 2x2 kernel, got %dx%d",
			ErrUnsupportedConfig, base.kernelH, base.kernelW)
	}
	if base.strideH != 2 || base.strideW != 2 {
		return nil, fmt.Errorf("%w: max pooling only supports stride (2, 2), got (%d, %d)",
			ErrUnsupportedConfig, base.strideH, base.strideW)
	}
	if base.padT != 0 || base.padB != 0 || base.padL != 0 || base.padR != 0 {
		return nil, fmt.Errorf("%w: max pooling with padding differs from the generic pooling semantics, got (%d, %d, %d, %d)",
			ErrUnsupportedConfig, base.padT, base.padB, base.padL, base.padR)
	}

	return &MaxPool{convPoolArgs: base}, nil
}

// Run executes the pooling.
//
// inputs[0] is the data tensor [N, C, H, W] with even H and W.
// outputs[0] is resized to [N, C, H/2, W/2] and written in place. Odd
// input dimensions are rejected rather than silently truncated.
func (op *MaxPool) Run(inputs, outputs []*tensor.Tensor) error {
	if len(inputs) != 1 || len(outputs) != 1 {
		return fmt.Errorf("%w: max pooling takes 1 input and 1 output, got %d and %d",
			ErrInvalidArg, len(inputs), len(outputs))
	}
	x := inputs[0]

	if x.NDim() != 4 {
		return fmt.Errorf("%w: input must be 4-D [N, C, H, W], got %d-D", ErrBadShape, x.NDim())
	}
	n, c, h, w := x.Dim(0), x.Dim(1), x.Dim(2), x.Dim(3)
	if h%2 != 0 || w%2 != 0 {
		return fmt.Errorf("%w: max pooling requires even input dimensions, got %dx%d",
			ErrBadShape, h, w)
	}

	outH, outW, err := op.outputDims(h, w)
	if err != nil {
		return err
	}
	y := outputs[0]
	if err := y.Resize(tensor.Shape{n, c, outH, outW}); err != nil {
		return err
	}

	p, err := kernels.SharedPool()
	if err != nil {
		return err
	}

	return kernels.MaxPooling(n, c,
		spatialSize(h, w),
		kernelPadding(op.padT, op.padB, op.padL, op.padR),
		spatialSize(op.kernelH, op.kernelW),
		spatialSize(op.strideH, op.strideW),
		x.Data(), y.Data(), p)
}
