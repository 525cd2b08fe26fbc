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
	"os"

	"gopkg.in/yaml.v3"
)

// instanceFile is the YAML shape of a problem-instance file:
//
//	warehouses:
//	  - id: W1
//	    capacity: 100
//	customers:
//	  - id: C1
//	    demand: 80
//	costs:
//	  - warehouse: W1
//	    customer: C1
//	    cost: 4
type instanceFile struct {
	Warehouses []struct {
		ID       string  `yaml:"id"`
		Capacity float64 `yaml:"capacity"`
	} `yaml:"warehouses"`
	Customers []struct {
		ID     string  `yaml:"id"`
		Demand float64 `yaml:"demand"`
	} `yaml:"customers"`
	Costs []struct {
		Warehouse string  `yaml:"warehouse"`
		Customer  string  `yaml:"customer"`
		Cost      float64 `yaml:"cost"`
	} `yaml:"costs"`
}

// ParseInstance decodes a YAML problem instance. Decoding errors are
// returned as-is; semantic validation happens at solve time via Validate.
func ParseInstance(data []byte) (ProblemInstance, error) {
	var f instanceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return ProblemInstance{}, fmt.Errorf("decoding instance: %w", err)
	}

	inst := ProblemInstance{Costs: make(CostMatrix, len(f.Costs))}
	for _, w := range f.Warehouses {
		inst.Warehouses = append(inst.Warehouses, Warehouse{ID: w.ID, Capacity: w.Capacity})
	}
	for _, c := range f.Customers {
		inst.Customers = append(inst.Customers, Customer{ID: c.ID, Demand: c.Demand})
	}
	for _, e := range f.Costs {
		inst.Costs[Lane{Warehouse: e.Warehouse, Customer: e.Customer}] = e.Cost
	}

	return inst, nil
}

// LoadInstance reads and decodes a YAML problem instance from a file.
func LoadInstance(path string) (ProblemInstance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProblemInstance{}, fmt.Errorf("reading instance: %w", err)
	}
	return ParseInstance(data)
}
