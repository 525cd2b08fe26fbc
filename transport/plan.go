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

package transport

// Status classifies the outcome of a solve.
type Status int

const (
	// StatusError indicates the solve could not be carried out: invalid
	// input, a malformed model, or a solver fault. Result.Message carries
	// the detail.
	StatusError Status = iota
	// StatusOptimal indicates a minimum-cost plan was found.
	StatusOptimal
	// StatusInfeasible indicates no assignment satisfies every capacity
	// and demand constraint, e.g. total capacity below total demand.
	StatusInfeasible
	// StatusUnbounded is not naturally reachable in this formulation but
	// is reported rather than dropped if the solver ever returns it.
	StatusUnbounded
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusError:
		return "Error"
	case StatusOptimal:
		return "Optimal"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	}
	return "Unknown"
}

// Shipment is one positive-flow line of a plan: Units shipped from Warehouse
// to Customer at UnitCost per unit, Cost = Units * UnitCost.
type Shipment struct {
	Warehouse string
	Customer  string
	Units     int64
	UnitCost  float64
	Cost      float64
}

// Plan is the shipment list of an optimal solve. Shipments are ordered
// warehouse-major in instance order and contain only lanes with strictly
// positive flow. TotalCost is the solver-reported objective value and equals
// the sum of the line costs up to floating-point tolerance.
type Plan struct {
	Shipments []Shipment
	TotalCost float64
}

// Result is the full outcome of a solve. Plan is non-nil only when Status is
// StatusOptimal.
type Result struct {
	Status  Status
	Plan    *Plan
	Message string
}
