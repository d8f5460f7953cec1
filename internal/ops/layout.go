package ops

import "github.com/axon-ml/axon/internal/kernels"

// The framework stores spatial extents (height, width)-ordered and
// padding (top, bottom, left, right)-ordered; the kernels take
// width-major sizes and (top, right, bottom, left) padding. These two
// functions are the only place the orders are translated.

// spatialSize converts a (height, width) tensor extent into the
// kernels' width-major Size.
func spatialSize(h, w int) kernels.Size {
	return kernels.Size{Width: w, Height: h}
}

// kernelPadding converts (top, bottom, left, right) padding into the
// kernels' (top, right, bottom, left) Padding.
func kernelPadding(t, b, l, r int) kernels.Padding {
	return kernels.Padding{Top: t, Right: r, Bottom: b, Left: l}
}
