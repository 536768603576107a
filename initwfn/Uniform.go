package initwfn

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// UniformConfig implements a configuration of a weight initializer
// that draws weights from a uniform distribution over [Low, High) with
// an explicitly seeded source, so that runs with the same seed start
// from identical weights.
type UniformConfig struct {
	Low, High float64
	Seed      uint64
}

// NewUniform returns a new uniform weight initializer
func NewUniform(low, high float64, seed uint64) (*InitWFn, error) {
	config := UniformConfig{
		Low:  low,
		High: high,
		Seed: seed,
	}

	return newInitWFn(config)
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (u UniformConfig) Type() Type {
	return Uniform
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (u UniformConfig) Create() G.InitWFn {
	dist := distuv.Uniform{
		Min: u.Low,
		Max: u.High,
		Src: rand.NewSource(u.Seed),
	}

	return func(dt tensor.Dtype, s ...int) interface{} {
		size := tensor.Shape(s).TotalSize()

		switch dt {
		case tensor.Float64:
			data := make([]float64, size)
			for i := range data {
				data[i] = dist.Rand()
			}
			return data

		case tensor.Float32:
			data := make([]float32, size)
			for i := range data {
				data[i] = float32(dist.Rand())
			}
			return data
		}
		panic(fmt.Sprintf("create: unsupported dtype %v", dt))
	}
}
