package VorticityStream

import "fmt"

// InvalidInitialConditionError reports an unknown generator name or a
// coefficient vector that does not match the generator's declared layout.
type InvalidInitialConditionError struct {
	Name   string
	Layout string
	Got    int
	Reason string
}

func (e *InvalidInitialConditionError) Error() string {
	if e.Layout == "" {
		return fmt.Sprintf("invalid initial condition %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("invalid initial condition %q: %s (expected layout: %s, got %d coefficients)",
		e.Name, e.Reason, e.Layout, e.Got)
}

// NumericalDivergenceError reports NaN/Inf in the vorticity field during time
// integration. The solve is fatal and is never retried here; the caller
// decides whether to resubmit with a smaller dt or a finer grid.
type NumericalDivergenceError struct {
	Step int
	Time float64
}

func (e *NumericalDivergenceError) Error() string {
	return fmt.Sprintf("numerical divergence: non-finite vorticity at step %d, t=%g", e.Step, e.Time)
}
