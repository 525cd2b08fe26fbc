// Copyright 2025 The shipopt Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mip

import "math"

// Status is the termination status of a solve.
type Status int

const (
	// StatusNotSolved indicates the solve stopped before a conclusive
	// answer was reached, e.g. because the iteration limit was hit.
	StatusNotSolved Status = iota
	// StatusOptimal indicates a provably optimal solution was found.
	StatusOptimal
	// StatusInfeasible indicates no assignment satisfies all constraints.
	StatusInfeasible
	// StatusUnbounded indicates the objective can be improved without limit.
	StatusUnbounded
	// StatusModelInvalid indicates the model itself is malformed, e.g. a
	// variable with a lower bound above its upper bound.
	StatusModelInvalid
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusNotSolved:
		return "NOT_SOLVED"
	case StatusOptimal:
		return "OPTIMAL"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusUnbounded:
		return "UNBOUNDED"
	case StatusModelInvalid:
		return "MODEL_INVALID"
	}
	return "UNKNOWN"
}

// Response holds the outcome of a solve.
//
// Solution is indexed by VarIndex and is only populated when Status is
// StatusOptimal; callers must not read it otherwise.
type Response struct {
	Status         Status
	Solution       []float64
	ObjectiveValue float64
	// Message carries extra detail for non-optimal terminations.
	Message string
	// Iterations is the total simplex iteration count across all
	// branch-and-bound nodes.
	Iterations int
	// Nodes is the number of branch-and-bound nodes explored.
	Nodes int
}

// SolutionValue returns the value of LinearArgument `la` in the response.
func SolutionValue(r *Response, la LinearArgument) float64 {
	return la.evaluateSolutionValue(r)
}

// SolutionIntegerValue returns the value of LinearArgument `la` in the
// response rounded to the nearest integer. Integer variables may come back
// from the LP relaxation with residual floating noise; this is the accessor
// to read them with.
func SolutionIntegerValue(r *Response, la LinearArgument) int64 {
	return int64(math.Round(la.evaluateSolutionValue(r)))
}
