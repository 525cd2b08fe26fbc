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

import (
	"fmt"

	"github.com/optkit/shipopt/mip"
)

// Solve computes a minimum-cost shipment plan for the instance with default
// solver parameters.
func Solve(inst ProblemInstance) Result {
	return SolveWithParameters(inst, mip.DefaultParameters())
}

// SolveWithParameters validates the instance, builds the transportation
// integer program, solves it, and interprets the outcome.
//
// All failure classes come back as a Result status with a message; nothing
// propagates as a panic or error out of the engine. Each invocation is
// independent and blocks until the solve has run to completion.
func SolveWithParameters(inst ProblemInstance, params mip.Parameters) Result {
	if err := Validate(inst); err != nil {
		return Result{Status: StatusError, Message: fmt.Sprintf("invalid instance: %v", err)}
	}

	// With no warehouses or no customers there are no lanes to ship on.
	// Zero total demand is trivially met by the empty plan; positive
	// demand with nothing to ship it from cannot be.
	if len(inst.Warehouses) == 0 || len(inst.Customers) == 0 {
		if inst.TotalDemand() > 0 {
			return Result{Status: StatusInfeasible, Message: "positive demand with no shippable lanes"}
		}
		return Result{Status: StatusOptimal, Plan: &Plan{}}
	}

	model, x, err := buildModel(inst)
	if err != nil {
		return Result{Status: StatusError, Message: fmt.Sprintf("building model: %v", err)}
	}

	res, err := mip.SolveWithParameters(model, params)
	if err != nil {
		return Result{Status: StatusError, Message: fmt.Sprintf("solving model: %v", err)}
	}

	return interpret(inst, x, res)
}

// buildModel translates the instance into an integer program: one integer
// variable x[w][c] >= 0 per lane, objective min sum cost(w,c)*x[w][c],
// per-warehouse constraints sum_c x[w][c] <= capacity(w), and per-customer
// constraints sum_w x[w][c] == demand(c).
func buildModel(inst ProblemInstance) (*mip.Model, [][]mip.IntVar, error) {
	mb := mip.NewBuilder("transportation")

	x := make([][]mip.IntVar, len(inst.Warehouses))
	obj := mip.NewLinearExpr()
	for wi, w := range inst.Warehouses {
		x[wi] = make([]mip.IntVar, len(inst.Customers))
		for ci, c := range inst.Customers {
			v := mb.NewIntVar(0, mip.Infinity()).WithName(fmt.Sprintf("x[%s][%s]", w.ID, c.ID))
			x[wi][ci] = v
			cost, _ := inst.Costs.Cost(w.ID, c.ID)
			obj.AddTerm(v, cost)
		}
	}
	mb.Minimize(obj)

	for wi, w := range inst.Warehouses {
		supply := mip.NewLinearExpr()
		for ci := range inst.Customers {
			supply.Add(x[wi][ci])
		}
		mb.AddLinearConstraint(supply, 0, w.Capacity).WithName(fmt.Sprintf("capacity[%s]", w.ID))
	}

	for ci, c := range inst.Customers {
		inflow := mip.NewLinearExpr()
		for wi := range inst.Warehouses {
			inflow.Add(x[wi][ci])
		}
		mb.AddLinearConstraint(inflow, c.Demand, c.Demand).WithName(fmt.Sprintf("demand[%s]", c.ID))
	}

	model, err := mb.Build()
	if err != nil {
		return nil, nil, err
	}
	return model, x, nil
}

// interpret maps the solver response to a Result. Variable values are only
// read on an optimal termination.
func interpret(inst ProblemInstance, x [][]mip.IntVar, res *mip.Response) Result {
	switch res.Status {
	case mip.StatusOptimal:
		// Fall through to plan extraction below.
	case mip.StatusInfeasible:
		return Result{Status: StatusInfeasible, Message: res.Message}
	case mip.StatusUnbounded:
		return Result{Status: StatusUnbounded, Message: res.Message}
	default:
		return Result{Status: StatusError, Message: fmt.Sprintf("solver terminated with %v: %s", res.Status, res.Message)}
	}

	plan := &Plan{TotalCost: res.ObjectiveValue}
	for wi, w := range inst.Warehouses {
		for ci, c := range inst.Customers {
			units := mip.SolutionIntegerValue(res, x[wi][ci])
			if units <= 0 {
				continue
			}
			cost, _ := inst.Costs.Cost(w.ID, c.ID)
			plan.Shipments = append(plan.Shipments, Shipment{
				Warehouse: w.ID,
				Customer:  c.ID,
				Units:     units,
				UnitCost:  cost,
				Cost:      float64(units) * cost,
			})
		}
	}
	return Result{Status: StatusOptimal, Plan: plan}
}
