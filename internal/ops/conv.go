// Package ops implements the operator layer: construction-time
// configuration validation and per-run shape checking around the
// accelerated convolution and pooling kernels.
package ops

import (
	"fmt"

	"github.com/axon-ml/axon/internal/kernels"
	"github.com/axon-ml/axon/internal/tensor"
)

// Conv is the accelerated 2D convolution operator.
//
// It runs on channel-first tensors only and routes each invocation to
// one of the kernels' two convolution entry points: the single-sample
// path for batch size 1 (any stride) and the batched path for larger
// batches (unit stride only). Configuration is immutable after
// construction; Run has no state across calls.
type Conv struct {
	convPoolArgs
	algo kernels.Algorithm
	kts  kernels.TransformStrategy
}

// NewConv constructs a convolution operator from an argument bag.
//
// In addition to the shared spatial keys (see parseConvPoolArgs), it
// recognizes:
//
//	algo  "AUTO", "WINOGRAD", "FT16" or "FT8" (default "AUTO")
//	kts   "BLOCK" or "TUPLE" (default "TUPLE")
//
// Unrecognized algo/kts values fail construction rather than silently
// selecting a default, so configuration typos surface immediately.
func NewConv(args Args) (*Conv, error) {
	base, err := parseConvPoolArgs(args)
	if err != nil {
		return nil, err
	}

	r := &argReader{args: args}
	algoArg := r.str("algo", "AUTO")
	ktsArg := r.str("kts", "TUPLE")
	if r.err != nil {
		return nil, r.err
	}

	algo, err := parseAlgorithm(algoArg)
	if err != nil {
		return nil, err
	}
	kts, err := parseTransformStrategy(ktsArg)
	if err != nil {
		return nil, err
	}

	return &Conv{convPoolArgs: base, algo: algo, kts: kts}, nil
}

func parseAlgorithm(s string) (kernels.Algorithm, error) {
	switch s {
	case "AUTO":
		return kernels.Auto, nil
	case "WINOGRAD":
		return kernels.WinogradWT8x8, nil
	case "FT16":
		return kernels.FT16x16, nil
	case "FT8":
		return kernels.FT8x8, nil
	default:
		return 0, fmt.Errorf(`%w: unknown convolution algorithm %q (want "AUTO", "WINOGRAD", "FT16" or "FT8")`,
			ErrUnsupportedConfig, s)
	}
}

func parseTransformStrategy(s string) (kernels.TransformStrategy, error) {
	switch s {
	case "BLOCK":
		return kernels.BlockBased, nil
	case "TUPLE":
		return kernels.TupleBased, nil
	default:
		return 0, fmt.Errorf(`%w: unknown kernel transform strategy %q (want "BLOCK" or "TUPLE")`,
			ErrUnsupportedConfig, s)
	}
}

// Algorithm returns the configured convolution algorithm.
func (op *Conv) Algorithm() kernels.Algorithm {
	return op.algo
}

// TransformStrategy returns the configured kernel transform strategy.
func (op *Conv) TransformStrategy() kernels.TransformStrategy {
	return op.kts
}

// Run executes the convolution.
//
// inputs[0] is the data tensor [N, C, H, W], inputs[1] the filter
// [M, C, Kh, Kw], inputs[2] the bias [M]. outputs[0] is resized to
// [N, M, Ho, Wo] and written in place. Shape violations and kernel
// failures abort the invocation with an error.
func (op *Conv) Run(inputs, outputs []*tensor.Tensor) error {
	if len(inputs) != 3 || len(outputs) != 1 {
		return fmt.Errorf("%w: conv takes 3 inputs (data, filter, bias) and 1 output, got %d and %d",
			ErrInvalidArg, len(inputs), len(outputs))
	}
	x, filter, bias := inputs[0], inputs[1], inputs[2]

	if x.NDim() != 4 {
		return fmt.Errorf("%w: input must be 4-D [N, C, H, W], got %d-D", ErrBadShape, x.NDim())
	}
	n, c, h, w := x.Dim(0), x.Dim(1), x.Dim(2), x.Dim(3)

	if filter.NDim() != 4 {
		return fmt.Errorf("%w: filter must be 4-D [M, C, Kh, Kw], got %d-D", ErrBadShape, filter.NDim())
	}
	m := filter.Dim(0)
	if filter.Dim(1) != c {
		return fmt.Errorf("%w: filter channels %d != input channels %d",
			ErrBadShape, filter.Dim(1), c)
	}
	if filter.Dim(2) != op.kernelH || filter.Dim(3) != op.kernelW {
		return fmt.Errorf("%w: filter spatial dims %dx%d != configured kernel %dx%d",
			ErrBadShape, filter.Dim(2), filter.Dim(3), op.kernelH, op.kernelW)
	}
	if bias.NDim() != 1 {
		return fmt.Errorf("%w: bias must be 1-D, got %d-D", ErrBadShape, bias.NDim())
	}
	if bias.Dim(0) != m {
		return fmt.Errorf("%w: bias length %d != output channels %d", ErrBadShape, bias.Dim(0), m)
	}

	// The batched kernel path only supports unit stride.
	if n > 1 && (op.strideH != 1 || op.strideW != 1) {
		return fmt.Errorf("%w: batch size %d requires stride (1, 1), configured (%d, %d)",
			ErrBadShape, n, op.strideH, op.strideW)
	}

	outH, outW, err := op.outputDims(h, w)
	if err != nil {
		return err
	}
	y := outputs[0]
	if err := y.Resize(tensor.Shape{n, m, outH, outW}); err != nil {
		return err
	}

	p, err := kernels.SharedPool()
	if err != nil {
		return err
	}

	inputSize := spatialSize(h, w)
	kernelSize := spatialSize(op.kernelH, op.kernelW)
	padding := kernelPadding(op.padT, op.padB, op.padL, op.padR)

	if n == 1 {
		subsampling := spatialSize(op.strideH, op.strideW)
		return kernels.ConvolutionInference(op.algo, op.kts, c, m,
			inputSize, padding, kernelSize, subsampling,
			x.Data(), filter.Data(), bias.Data(), y.Data(), p)
	}
	return kernels.ConvolutionOutput(op.algo, n, c, m,
		inputSize, padding, kernelSize,
		x.Data(), filter.Data(), bias.Data(), y.Data(), p)
}
