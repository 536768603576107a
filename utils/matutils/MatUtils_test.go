package matutils

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestOneHot(t *testing.T) {
	const length = 25

	for i := 0; i < length; i++ {
		vec := OneHot(i, length)

		if vec.Len() != length {
			t.Fatalf("vector length %d, expected %d", vec.Len(), length)
		}
		for j := 0; j < length; j++ {
			want := 0.0
			if j == i {
				want = 1.0
			}
			if vec.AtVec(j) != want {
				t.Errorf("OneHot(%d, %d)[%d] = %v, expected %v", i, length,
					j, vec.AtVec(j), want)
			}
		}
	}
}

func TestMaxVec(t *testing.T) {
	tests := []struct {
		values []float64
		want   int
	}{
		{[]float64{1, 2, 3}, 2},
		{[]float64{3, 2, 1}, 0},
		{[]float64{1, 3, 2}, 1},
		{[]float64{-1, -3, -2}, 0},
	}

	for _, test := range tests {
		got := MaxVec(mat.NewVecDense(len(test.values), test.values))
		if got != test.want {
			t.Errorf("MaxVec(%v) = %d, expected %d", test.values, got,
				test.want)
		}
	}
}

// Ties must resolve to the first maximal index
func TestMaxVecTies(t *testing.T) {
	tests := []struct {
		values []float64
		want   int
	}{
		{[]float64{0, 0, 0, 0}, 0},
		{[]float64{1, 2, 2, 1}, 1},
		{[]float64{2, 1, 2}, 0},
	}

	for _, test := range tests {
		got := MaxVec(mat.NewVecDense(len(test.values), test.values))
		if got != test.want {
			t.Errorf("MaxVec(%v) = %d, expected %d", test.values, got,
				test.want)
		}
	}
}
