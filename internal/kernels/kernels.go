// Package kernels implements the accelerated convolution and pooling
// kernels the Axon operator layer dispatches to.
//
// The package mirrors the calling convention of fixed-function kernel
// libraries: geometry is passed as explicit width-major sizes and
// (top, right, bottom, left) padding, data as raw float32 slices, and
// parallelism as an explicit worker pool handle. Convolution has two
// structurally different entry points, a single-sample one that accepts
// arbitrary output subsampling and a batched one that assumes unit
// stride.
package kernels

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/axon-ml/axon/internal/pool"
)

// Size is a spatial extent in width-major order. Callers translating
// from (height, width)-ordered tensor shapes must swap axes; see the
// operator layer's layout translation.
type Size struct {
	Width  int
	Height int
}

// Padding is implicit zero-padding around an input image, in
// (top, right, bottom, left) order.
type Padding struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Algorithm selects the convolution algorithm.
type Algorithm int

// Supported convolution algorithms.
const (
	Auto          Algorithm = iota // Pick per problem size.
	WinogradWT8x8                  // Winograd transform on 8x8 tiles.
	FT16x16                        // Fourier transform on 16x16 tiles.
	FT8x8                          // Fourier transform on 8x8 tiles.
)

// String returns a human-readable algorithm name.
func (a Algorithm) String() string {
	switch a {
	case Auto:
		return "auto"
	case WinogradWT8x8:
		return "wt8x8"
	case FT16x16:
		return "ft16x16"
	case FT8x8:
		return "ft8x8"
	default:
		return "unknown"
	}
}

// TransformStrategy selects the transform-domain memory layout for the
// single-sample convolution path.
type TransformStrategy int

// Supported transform strategies.
const (
	BlockBased TransformStrategy = iota
	TupleBased
)

// String returns a human-readable strategy name.
func (s TransformStrategy) String() string {
	switch s {
	case BlockBased:
		return "block"
	case TupleBased:
		return "tuple"
	default:
		return "unknown"
	}
}

// Kernel status errors.
var (
	ErrUnsupportedHardware = errors.New("kernels: unsupported hardware")
	ErrInvalidParameter    = errors.New("kernels: invalid parameter")
	ErrShapeMismatch       = errors.New("kernels: buffer length does not match geometry")
)

var (
	initOnce sync.Once
	initErr  error
)

// Initialize verifies the kernels are usable on this machine. It runs
// at most once per process; subsequent calls return the first result.
func Initialize() error {
	initOnce.Do(func() {
		switch runtime.GOARCH {
		case "amd64", "arm64":
			// Supported.
		default:
			initErr = fmt.Errorf("%w: %s", ErrUnsupportedHardware, runtime.GOARCH)
		}
	})
	return initErr
}

var (
	sharedOnce sync.Once
	shared     *pool.Pool
	sharedErr  error
)

// SharedPool returns the process-wide worker pool used by kernel
// invocations. The first call initializes the kernel runtime and
// creates a pool sized to the configured worker budget; every later
// call, from any goroutine, returns the same handle. The pool lives
// until process exit. An initialization failure is sticky.
func SharedPool() (*pool.Pool, error) {
	sharedOnce.Do(func() {
		if err := Initialize(); err != nil {
			sharedErr = err
			return
		}
		shared = pool.New(pool.MaxWorkers())
	})
	return shared, sharedErr
}

func (s Size) positive() bool {
	return s.Width > 0 && s.Height > 0
}

func (p Padding) nonNegative() bool {
	return p.Top >= 0 && p.Right >= 0 && p.Bottom >= 0 && p.Left >= 0
}

// outputSize applies the standard sliding-window output formula in both
// axes. Fails when the window does not fit the padded input.
func outputSize(input Size, padding Padding, window, stride Size) (Size, error) {
	outW := (input.Width+padding.Left+padding.Right-window.Width)/stride.Width + 1
	outH := (input.Height+padding.Top+padding.Bottom-window.Height)/stride.Height + 1
	if outW <= 0 || outH <= 0 {
		return Size{}, fmt.Errorf("%w: window %dx%d with stride %dx%d does not fit input %dx%d",
			ErrInvalidParameter, window.Width, window.Height,
			stride.Width, stride.Height, input.Width, input.Height)
	}
	return Size{Width: outW, Height: outH}, nil
}
