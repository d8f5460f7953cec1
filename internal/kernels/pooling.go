package kernels

import (
	"fmt"
	"math"

	"github.com/axon-ml/axon/internal/pool"
)

// MaxPooling computes 2D max pooling over a [batchSize, channels, H, W]
// input, writing [batchSize, channels, Ho, Wo] to output. Padded
// positions never contribute to a window maximum. Batch-channel planes
// are distributed across the pool; a nil pool runs single-threaded.
func MaxPooling(
	batchSize, channels int,
	inputSize Size,
	padding Padding,
	poolingSize, poolingStride Size,
	input, output []float32,
	p *pool.Pool,
) error {
	if batchSize <= 0 || channels <= 0 {
		return fmt.Errorf("%w: batch=%d channels=%d", ErrInvalidParameter, batchSize, channels)
	}
	if !inputSize.positive() || !poolingSize.positive() || !poolingStride.positive() {
		return fmt.Errorf("%w: input=%+v pooling=%+v stride=%+v",
			ErrInvalidParameter, inputSize, poolingSize, poolingStride)
	}
	if !padding.nonNegative() {
		return fmt.Errorf("%w: padding=%+v", ErrInvalidParameter, padding)
	}
	out, err := outputSize(inputSize, padding, poolingSize, poolingStride)
	if err != nil {
		return err
	}

	wantIn := batchSize * channels * inputSize.Height * inputSize.Width
	wantOut := batchSize * channels * out.Height * out.Width
	if len(input) != wantIn {
		return fmt.Errorf("%w: input has %d elements, geometry requires %d",
			ErrShapeMismatch, len(input), wantIn)
	}
	if len(output) != wantOut {
		return fmt.Errorf("%w: output has %d elements, geometry requires %d",
			ErrShapeMismatch, len(output), wantOut)
	}

	inPlane := inputSize.Height * inputSize.Width
	outPlane := out.Height * out.Width
	p.Do(batchSize*channels, func(plane int) {
		in := input[plane*inPlane : (plane+1)*inPlane]
		dst := output[plane*outPlane : (plane+1)*outPlane]
		maxPoolPlane(dst, in, inputSize, padding, poolingSize, poolingStride, out)
	})
	return nil
}

// maxPoolPlane pools one [H, W] plane.
func maxPoolPlane(dst, in []float32, inSize Size, pad Padding, window, stride, out Size) {
	for oy := 0; oy < out.Height; oy++ {
		yStart := oy*stride.Height - pad.Top
		for ox := 0; ox < out.Width; ox++ {
			xStart := ox*stride.Width - pad.Left

			maxVal := float32(math.Inf(-1))
			for ky := 0; ky < window.Height; ky++ {
				y := yStart + ky
				if y < 0 || y >= inSize.Height {
					continue
				}
				row := in[y*inSize.Width : (y+1)*inSize.Width]
				for kx := 0; kx < window.Width; kx++ {
					x := xStart + kx
					if x < 0 || x >= inSize.Width {
						continue
					}
					if v := row[x]; v > maxVal {
						maxVal = v
					}
				}
			}
			dst[oy*out.Width+ox] = maxVal
		}
	}
}
