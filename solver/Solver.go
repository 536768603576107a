// Package solver wraps Gorgonia Solvers so that they can be described
// by configuration values and constructed by name.
package solver

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of solvers that are available
type Type string

// Available solver types
const (
	Adam    Type = "Adam"
	Vanilla Type = "Vanilla"
)

// Solver wraps a Gorgonia Solver together with the configuration that
// created it
type Solver struct {
	G.Solver
	Type
	Config
}

// newSolver returns a new solver with the given type and configuration
func newSolver(t Type, c Config) (*Solver, error) {
	if !c.ValidType(t) {
		return nil, fmt.Errorf("newsolver: invalid solver type %v for "+
			"configuration %T", t, c)
	}
	solver := Solver{Type: t, Config: c}
	solver.Solver = solver.Config.Create()

	return &solver, nil
}

// FromName constructs a solver from its type name with the given step
// size, for building solvers out of configuration files. Unknown names
// are an error.
func FromName(name string, stepSize float64) (*Solver, error) {
	switch Type(name) {
	case Vanilla, "":
		return NewVanilla(stepSize, 1)
	case Adam:
		return NewDefaultAdam(stepSize, 1)
	}
	return nil, fmt.Errorf("fromname: no such solver type %q", name)
}

// Config implements a Gorgonia Solver configuration and can be used to
// create the Gorgonia Solvers they describe
type Config interface {
	Create() G.Solver

	// ValidType returns whether a specific Solver type can be created
	// with the Config
	ValidType(Type) bool
}
