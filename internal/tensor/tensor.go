// Package tensor provides the channel-first float32 tensor type the
// Axon operator layer reads inputs from and writes results into.
package tensor

import "fmt"

// Tensor is a dense row-major float32 tensor.
//
// The engine treats tensors as externally owned views: operators read
// shape metadata and raw data, and resize outputs, but never retain or
// free a tensor. Convolution and pooling inputs use channel-first
// [batch, channel, height, width] layout.
type Tensor struct {
	shape Shape
	data  []float32
}

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Tensor{
		shape: shape.Clone(),
		data:  make([]float32, shape.NumElements()),
	}, nil
}

// FromSlice creates a tensor with the given shape backed by data.
// The slice is used directly, not copied.
func FromSlice(shape Shape, data []float32) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	return &Tensor{shape: shape.Clone(), data: data}, nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NDim returns the number of dimensions.
func (t *Tensor) NDim() int {
	return len(t.shape)
}

// Dim returns the size of dimension i.
func (t *Tensor) Dim(i int) int {
	return t.shape[i]
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// Data returns the underlying float32 storage.
func (t *Tensor) Data() []float32 {
	return t.data
}

// Resize changes the tensor's shape, reallocating storage only when the
// element count grows. Existing values are not preserved. Used by the
// operator layer to size output tensors before a kernel call.
func (t *Tensor) Resize(shape Shape) error {
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("invalid shape: %w", err)
	}
	n := shape.NumElements()
	if n > cap(t.data) {
		t.data = make([]float32, n)
	} else {
		t.data = t.data[:n]
	}
	t.shape = shape.Clone()
	return nil
}

// String returns a short description like Tensor[2, 3, 4, 4].
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v", []int(t.shape))
}
