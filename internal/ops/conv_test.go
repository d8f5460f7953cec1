package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-ml/axon/internal/kernels"
	"github.com/axon-ml/axon/internal/tensor"
)

func newTensor(t *testing.T, shape tensor.Shape, fill func(i int) float32) *tensor.Tensor {
	t.Helper()
	x, err := tensor.New(shape)
	require.NoError(t, err)
	if fill != nil {
		data := x.Data()
		for i := range data {
			data[i] = fill(i)
		}
	}
	return x
}

func TestNewConv_Defaults(t *testing.T) {
	op, err := NewConv(Args{"kernel": 3})
	require.NoError(t, err)

	assert.Equal(t, kernels.Auto, op.Algorithm())
	assert.Equal(t, kernels.TupleBased, op.TransformStrategy())
}

func TestNewConv_AlgoMapping(t *testing.T) {
	tests := []struct {
		arg  string
		want kernels.Algorithm
	}{
		{"AUTO", kernels.Auto},
		{"WINOGRAD", kernels.WinogradWT8x8},
		{"FT16", kernels.FT16x16},
		{"FT8", kernels.FT8x8},
	}
	for _, tt := range tests {
		op, err := NewConv(Args{"kernel": 3, "algo": tt.arg})
		require.NoError(t, err, tt.arg)
		assert.Equal(t, tt.want, op.Algorithm(), tt.arg)
	}

	// Typos fail construction instead of silently selecting AUTO.
	_, err := NewConv(Args{"kernel": 3, "algo": "WINOGARD"})
	assert.ErrorIs(t, err, ErrUnsupportedConfig)
}

func TestNewConv_StrategyMapping(t *testing.T) {
	op, err := NewConv(Args{"kernel": 3, "kts": "BLOCK"})
	require.NoError(t, err)
	assert.Equal(t, kernels.BlockBased, op.TransformStrategy())

	op, err = NewConv(Args{"kernel": 3, "kts": "TUPLE"})
	require.NoError(t, err)
	assert.Equal(t, kernels.TupleBased, op.TransformStrategy())

	_, err = NewConv(Args{"kernel": 3, "kts": "tuple"})
	assert.ErrorIs(t, err, ErrUnsupportedConfig)
}

func TestNewConv_RejectsNonChannelFirst(t *testing.T) {
	for _, algo := range []string{"AUTO", "WINOGRAD", "FT16", "FT8"} {
		for _, kts := range []string{"BLOCK", "TUPLE"} {
			_, err := NewConv(Args{"kernel": 3, "order": "NHWC", "algo": algo, "kts": kts})
			assert.ErrorIs(t, err, ErrUnsupportedConfig, "algo=%s kts=%s", algo, kts)
		}
	}
}

func TestConv_Run_OutputShape(t *testing.T) {
	op, err := NewConv(Args{"kernel": 3})
	require.NoError(t, err)

	x := newTensor(t, tensor.Shape{1, 3, 8, 8}, func(i int) float32 { return float32(i%11) * 0.5 })
	filter := newTensor(t, tensor.Shape{4, 3, 3, 3}, func(i int) float32 { return float32(i%5) - 2 })
	bias := newTensor(t, tensor.Shape{4}, func(i int) float32 { return float32(i) })
	y := newTensor(t, tensor.Shape{1}, nil)

	require.NoError(t, op.Run([]*tensor.Tensor{x, filter, bias}, []*tensor.Tensor{y}))
	assert.True(t, y.Shape().Equal(tensor.Shape{1, 4, 6, 6}), "got %v", y.Shape())
}

func TestConv_Run_KnownValues(t *testing.T) {
	op, err := NewConv(Args{"kernel": 2})
	require.NoError(t, err)

	// 3x3 input 1..9, filter [1 2; 3 4], bias 10.
	x := newTensor(t, tensor.Shape{1, 1, 3, 3}, func(i int) float32 { return float32(i + 1) })
	filter := newTensor(t, tensor.Shape{1, 1, 2, 2}, func(i int) float32 { return float32(i + 1) })
	bias := newTensor(t, tensor.Shape{1}, func(int) float32 { return 10 })
	y := newTensor(t, tensor.Shape{1}, nil)

	require.NoError(t, op.Run([]*tensor.Tensor{x, filter, bias}, []*tensor.Tensor{y}))

	expected := []float32{47, 57, 77, 87}
	assert.Equal(t, expected, y.Data())
}

func TestConv_Run_BatchedMatchesSingleSample(t *testing.T) {
	op, err := NewConv(Args{"kernel": 3, "pad": 1})
	require.NoError(t, err)

	const batch = 3
	x := newTensor(t, tensor.Shape{batch, 2, 6, 6}, func(i int) float32 { return float32(i%9) * 0.25 })
	filter := newTensor(t, tensor.Shape{4, 2, 3, 3}, func(i int) float32 { return float32(i%7) - 3 })
	bias := newTensor(t, tensor.Shape{4}, func(i int) float32 { return float32(i) * 0.5 })

	batched := newTensor(t, tensor.Shape{1}, nil)
	require.NoError(t, op.Run([]*tensor.Tensor{x, filter, bias}, []*tensor.Tensor{batched}))
	require.True(t, batched.Shape().Equal(tensor.Shape{batch, 4, 6, 6}))

	sampleIn := 2 * 6 * 6
	sampleOut := 4 * 6 * 6
	for n := 0; n < batch; n++ {
		single, err := tensor.FromSlice(tensor.Shape{1, 2, 6, 6},
			x.Data()[n*sampleIn:(n+1)*sampleIn])
		require.NoError(t, err)

		y := newTensor(t, tensor.Shape{1}, nil)
		require.NoError(t, op.Run([]*tensor.Tensor{single, filter, bias}, []*tensor.Tensor{y}))

		assert.InDeltaSlice(t, y.Data(), batched.Data()[n*sampleOut:(n+1)*sampleOut], 1e-4,
			"sample %d", n)
	}
}

func TestConv_Run_Preconditions(t *testing.T) {
	op, err := NewConv(Args{"kernel": 3})
	require.NoError(t, err)

	x := newTensor(t, tensor.Shape{1, 3, 8, 8}, nil)
	filter := newTensor(t, tensor.Shape{4, 3, 3, 3}, nil)
	bias := newTensor(t, tensor.Shape{4}, nil)
	y := newTensor(t, tensor.Shape{1}, nil)

	run := func(in ...*tensor.Tensor) error {
		return op.Run(in, []*tensor.Tensor{y})
	}

	assert.ErrorIs(t, run(x, filter), ErrInvalidArg, "missing bias input")

	bad3d := newTensor(t, tensor.Shape{3, 8, 8}, nil)
	assert.ErrorIs(t, run(bad3d, filter, bias), ErrBadShape, "3-D input")

	wrongChan := newTensor(t, tensor.Shape{4, 2, 3, 3}, nil)
	assert.ErrorIs(t, run(x, wrongChan, bias), ErrBadShape, "filter channel mismatch")

	wrongKernel := newTensor(t, tensor.Shape{4, 3, 5, 5}, nil)
	assert.ErrorIs(t, run(x, wrongKernel, bias), ErrBadShape, "filter spatial mismatch")

	shortBias := newTensor(t, tensor.Shape{3}, nil)
	assert.ErrorIs(t, run(x, filter, shortBias), ErrBadShape, "bias length mismatch")

	bias2d := newTensor(t, tensor.Shape{4, 1}, nil)
	assert.ErrorIs(t, run(x, filter, bias2d), ErrBadShape, "2-D bias")
}

func TestConv_Run_BatchedRequiresUnitStride(t *testing.T) {
	op, err := NewConv(Args{"kernel": 3, "stride": 2})
	require.NoError(t, err)

	filter := newTensor(t, tensor.Shape{4, 3, 3, 3}, nil)
	bias := newTensor(t, tensor.Shape{4}, nil)
	y := newTensor(t, tensor.Shape{1}, nil)

	// Single sample with stride 2 is fine.
	single := newTensor(t, tensor.Shape{1, 3, 9, 9}, nil)
	require.NoError(t, op.Run([]*tensor.Tensor{single, filter, bias}, []*tensor.Tensor{y}))

	// Batch > 1 with any non-unit stride is rejected.
	batched := newTensor(t, tensor.Shape{2, 3, 9, 9}, nil)
	err = op.Run([]*tensor.Tensor{batched, filter, bias}, []*tensor.Tensor{y})
	assert.ErrorIs(t, err, ErrBadShape)
}
