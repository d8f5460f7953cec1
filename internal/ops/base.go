package ops

import "fmt"

// convPoolArgs holds the spatial configuration shared by the
// convolution and pooling operators: kernel extent, stride, and
// per-edge padding, all in the framework's (height, width) and
// (top, bottom, left, right) storage orders.
type convPoolArgs struct {
	kernelH, kernelW int
	strideH, strideW int
	padT, padB       int
	padL, padR       int
}

// parseConvPoolArgs reads the shared spatial configuration from an
// argument bag. Recognized keys:
//
//	order                              data layout, must be "NCHW" (default)
//	kernel, kernel_h, kernel_w         kernel extent; _h/_w override kernel
//	stride, stride_h, stride_w         stride, default 1
//	pad, pad_t, pad_b, pad_l, pad_r    zero padding, default 0
func parseConvPoolArgs(args Args) (convPoolArgs, error) {
	var c convPoolArgs
	r := &argReader{args: args}

	order := r.str("order", "NCHW")
	k := r.num("kernel", 0)
	c.kernelH = r.num("kernel_h", k)
	c.kernelW = r.num("kernel_w", k)
	s := r.num("stride", 1)
	c.strideH = r.num("stride_h", s)
	c.strideW = r.num("stride_w", s)
	p := r.num("pad", 0)
	c.padT = r.num("pad_t", p)
	c.padB = r.num("pad_b", p)
	c.padL = r.num("pad_l", p)
	c.padR = r.num("pad_r", p)
	if r.err != nil {
		return c, r.err
	}

	if order != "NCHW" {
		return c, fmt.Errorf("%w: data layout %q; only channel-first NCHW is supported, "+
			"transpose with axes [0, 3, 1, 2] first", ErrUnsupportedConfig, order)
	}
	if c.kernelH <= 0 || c.kernelW <= 0 {
		return c, fmt.Errorf("%w: kernel size %dx%d must be positive",
			ErrInvalidArg, c.kernelH, c.kernelW)
	}
	if c.strideH <= 0 || c.strideW <= 0 {
		return c, fmt.Errorf("%w: stride %dx%d must be positive",
			ErrInvalidArg, c.strideH, c.strideW)
	}
	if c.padT < 0 || c.padB < 0 || c.padL < 0 || c.padR < 0 {
		return c, fmt.Errorf("%w: padding (%d, %d, %d, %d) must be non-negative",
			ErrInvalidArg, c.padT, c.padB, c.padL, c.padR)
	}
	return c, nil
}

// outputDims applies the standard sliding-window output-size formula to
// an input's (height, width), failing when the window does not fit.
func (c convPoolArgs) outputDims(h, w int) (outH, outW int, err error) {
	outH = (h+c.padT+c.padB-c.kernelH)/c.strideH + 1
	outW = (w+c.padL+c.padR-c.kernelW)/c.strideW + 1
	if outH <= 0 || outW <= 0 {
		return 0, 0, fmt.Errorf("%w: kernel %dx%d with stride %dx%d does not fit input %dx%d",
			ErrBadShape, c.kernelH, c.kernelW, c.strideH, c.strideW, h, w)
	}
	return outH, outW, nil
}
