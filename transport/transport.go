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

// Package transport computes minimum-cost shipping plans for the capacitated
// transportation problem: goods flow from warehouses with finite capacity to
// customers with fixed demand over a complete bipartite cost matrix.
//
// A ProblemInstance is an immutable description of one problem. Solve builds
// the integer program (one non-negative integer flow variable per
// warehouse-customer lane, per-warehouse capacity bounds, per-customer
// demand equalities), hands it to the mip package, and interprets the
// outcome into a Plan or a diagnostic status. Each call is a single,
// self-contained computation with no shared state between runs.
package transport

import (
	"errors"
	"fmt"
)

// Validation errors reported by Validate, wrapped with the offending
// identifiers.
var (
	ErrEmptyID            = errors.New("empty identifier")
	ErrDuplicateWarehouse = errors.New("duplicate warehouse identifier")
	ErrDuplicateCustomer  = errors.New("duplicate customer identifier")
	ErrNegativeCapacity   = errors.New("negative warehouse capacity")
	ErrNegativeDemand     = errors.New("negative customer demand")
	ErrNegativeCost       = errors.New("negative lane cost")
	ErrMissingCost        = errors.New("missing cost matrix entry")
)

// Warehouse is a supply point. Capacity is the upper bound on its total
// outflow; it need not be fully used.
type Warehouse struct {
	ID       string
	Capacity float64
}

// Customer is a demand point. Demand is the exact required inflow.
type Customer struct {
	ID     string
	Demand float64
}

// Lane identifies one warehouse-customer pair of the cost matrix.
type Lane struct {
	Warehouse string
	Customer  string
}

// CostMatrix maps every lane of the warehouse x customer cross product to a
// non-negative per-unit shipping cost. A missing entry is an input error,
// not a solver failure.
type CostMatrix map[Lane]float64

// Cost returns the per-unit cost of shipping from warehouse `w` to customer
// `c` and whether the entry exists.
func (cm CostMatrix) Cost(w, c string) (float64, bool) {
	cost, ok := cm[Lane{Warehouse: w, Customer: c}]
	return cost, ok
}

// ProblemInstance is one complete transportation problem. The ordering of
// Warehouses and Customers is preserved in the returned Plan. Instances are
// treated as immutable for the duration of a solve.
type ProblemInstance struct {
	Warehouses []Warehouse
	Customers  []Customer
	Costs      CostMatrix
}

// TotalCapacity returns the summed capacity of all warehouses.
func (p ProblemInstance) TotalCapacity() float64 {
	var total float64
	for _, w := range p.Warehouses {
		total += w.Capacity
	}
	return total
}

// TotalDemand returns the summed demand of all customers.
func (p ProblemInstance) TotalDemand() float64 {
	var total float64
	for _, c := range p.Customers {
		total += c.Demand
	}
	return total
}

// Validate checks the instance against the input invariants: identifiers are
// non-empty and unique within their collections, capacities, demands, and
// costs are non-negative, and the cost matrix covers the full cross product.
// The first violation found is returned; a nil result means the instance can
// be submitted to the solver.
//
// Aggregate feasibility (total capacity vs. total demand) is deliberately
// not checked here; that is the solver's verdict, reported as
// StatusInfeasible.
func Validate(p ProblemInstance) error {
	seenW := make(map[string]bool, len(p.Warehouses))
	for _, w := range p.Warehouses {
		if w.ID == "" {
			return fmt.Errorf("warehouse: %w", ErrEmptyID)
		}
		if seenW[w.ID] {
			return fmt.Errorf("%q: %w", w.ID, ErrDuplicateWarehouse)
		}
		seenW[w.ID] = true
		if w.Capacity < 0 {
			return fmt.Errorf("%q has capacity %v: %w", w.ID, w.Capacity, ErrNegativeCapacity)
		}
	}

	seenC := make(map[string]bool, len(p.Customers))
	for _, c := range p.Customers {
		if c.ID == "" {
			return fmt.Errorf("customer: %w", ErrEmptyID)
		}
		if seenC[c.ID] {
			return fmt.Errorf("%q: %w", c.ID, ErrDuplicateCustomer)
		}
		seenC[c.ID] = true
		if c.Demand < 0 {
			return fmt.Errorf("%q has demand %v: %w", c.ID, c.Demand, ErrNegativeDemand)
		}
	}

	for _, w := range p.Warehouses {
		for _, c := range p.Customers {
			cost, ok := p.Costs.Cost(w.ID, c.ID)
			if !ok {
				return fmt.Errorf("lane %s->%s: %w", w.ID, c.ID, ErrMissingCost)
			}
			if cost < 0 {
				return fmt.Errorf("lane %s->%s has cost %v: %w", w.ID, c.ID, cost, ErrNegativeCost)
			}
		}
	}

	return nil
}
