// Package workload implements the synthetic CPU load served by /stress.
package workload

import (
	"math"
	"time"
)

// Iterations is the number of square roots evaluated per stress request.
const Iterations = 1_000_000

// Workload evaluates Sqrt over the integers 0..N-1, in order.
type Workload struct {
	N    int
	Sqrt func(float64) float64
}

// Result describes a completed run. Sum only exists so the evaluated roots
// stay observable; it never reaches a response.
type Result struct {
	Evaluations int
	Sum         float64
	Elapsed     time.Duration
}

// Default returns the stress workload: math.Sqrt over 0..999999.
func Default() Workload {
	return Workload{N: Iterations, Sqrt: math.Sqrt}
}

// Run blocks the caller until every evaluation is done. It has no suspension
// points and cannot be cancelled.
func (w Workload) Run() Result {
	sqrt := w.Sqrt
	if sqrt == nil {
		sqrt = math.Sqrt
	}

	start := time.Now()
	var sum float64
	for x := 0; x < w.N; x++ {
		sum += sqrt(float64(x))
	}

	return Result{
		Evaluations: w.N,
		Sum:         sum,
		Elapsed:     time.Since(start),
	}
}
