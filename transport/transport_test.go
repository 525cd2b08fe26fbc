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

package transport_test

import (
	"errors"
	"testing"

	"github.com/optkit/shipopt/transport"
)

func TestValidate(t *testing.T) {
	valid := transport.ProblemInstance{
		Warehouses: []transport.Warehouse{{ID: "W1", Capacity: 100}, {ID: "W2", Capacity: 50}},
		Customers:  []transport.Customer{{ID: "C1", Demand: 80}},
		Costs: transport.CostMatrix{
			{Warehouse: "W1", Customer: "C1"}: 4,
			{Warehouse: "W2", Customer: "C1"}: 2,
		},
	}

	testCases := []struct {
		name    string
		mutate  func(p *transport.ProblemInstance)
		wantErr error
	}{
		{
			name:   "Valid",
			mutate: func(p *transport.ProblemInstance) {},
		},
		{
			name:   "EmptyInstanceIsValid",
			mutate: func(p *transport.ProblemInstance) { *p = transport.ProblemInstance{} },
		},
		{
			name: "EmptyWarehouseID",
			mutate: func(p *transport.ProblemInstance) {
				p.Warehouses[0].ID = ""
			},
			wantErr: transport.ErrEmptyID,
		},
		{
			name: "DuplicateWarehouse",
			mutate: func(p *transport.ProblemInstance) {
				p.Warehouses[1].ID = "W1"
			},
			wantErr: transport.ErrDuplicateWarehouse,
		},
		{
			name: "DuplicateCustomer",
			mutate: func(p *transport.ProblemInstance) {
				p.Customers = append(p.Customers, transport.Customer{ID: "C1", Demand: 5})
			},
			wantErr: transport.ErrDuplicateCustomer,
		},
		{
			name: "NegativeCapacity",
			mutate: func(p *transport.ProblemInstance) {
				p.Warehouses[0].Capacity = -1
			},
			wantErr: transport.ErrNegativeCapacity,
		},
		{
			name: "NegativeDemand",
			mutate: func(p *transport.ProblemInstance) {
				p.Customers[0].Demand = -1
			},
			wantErr: transport.ErrNegativeDemand,
		},
		{
			name: "NegativeCost",
			mutate: func(p *transport.ProblemInstance) {
				p.Costs[transport.Lane{Warehouse: "W1", Customer: "C1"}] = -4
			},
			wantErr: transport.ErrNegativeCost,
		},
		{
			name: "MissingCost",
			mutate: func(p *transport.ProblemInstance) {
				delete(p.Costs, transport.Lane{Warehouse: "W2", Customer: "C1"})
			},
			wantErr: transport.ErrMissingCost,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inst := transport.ProblemInstance{
				Warehouses: append([]transport.Warehouse(nil), valid.Warehouses...),
				Customers:  append([]transport.Customer(nil), valid.Customers...),
				Costs:      make(transport.CostMatrix, len(valid.Costs)),
			}
			for lane, cost := range valid.Costs {
				inst.Costs[lane] = cost
			}
			tc.mutate(&inst)

			err := transport.Validate(inst)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() returned error %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() returned error %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCostMatrix_Cost(t *testing.T) {
	cm := transport.CostMatrix{{Warehouse: "W1", Customer: "C1"}: 4}

	if cost, ok := cm.Cost("W1", "C1"); !ok || cost != 4 {
		t.Errorf("Cost(W1, C1) = (%v, %v), want (4, true)", cost, ok)
	}
	if _, ok := cm.Cost("W1", "C2"); ok {
		t.Errorf("Cost(W1, C2) = (_, true), want missing")
	}
}

func TestProblemInstance_Totals(t *testing.T) {
	inst := transport.ProblemInstance{
		Warehouses: []transport.Warehouse{{ID: "W1", Capacity: 100}, {ID: "W2", Capacity: 50}},
		Customers:  []transport.Customer{{ID: "C1", Demand: 80}, {ID: "C2", Demand: 30}},
	}

	if got, want := inst.TotalCapacity(), 150.0; got != want {
		t.Errorf("TotalCapacity() = %v, want %v", got, want)
	}
	if got, want := inst.TotalDemand(), 110.0; got != want {
		t.Errorf("TotalDemand() = %v, want %v", got, want)
	}
}
