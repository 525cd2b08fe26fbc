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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optkit/shipopt/transport"
)

const sampleInstance = `
warehouses:
  - id: W1
    capacity: 100
  - id: W2
    capacity: 100
customers:
  - id: C1
    demand: 80
costs:
  - warehouse: W1
    customer: C1
    cost: 4
  - warehouse: W2
    customer: C1
    cost: 2.5
`

func TestParseInstance(t *testing.T) {
	inst, err := transport.ParseInstance([]byte(sampleInstance))
	require.NoError(t, err)

	assert.Equal(t, []transport.Warehouse{{ID: "W1", Capacity: 100}, {ID: "W2", Capacity: 100}}, inst.Warehouses)
	assert.Equal(t, []transport.Customer{{ID: "C1", Demand: 80}}, inst.Customers)
	assert.Equal(t, transport.CostMatrix{
		{Warehouse: "W1", Customer: "C1"}: 4,
		{Warehouse: "W2", Customer: "C1"}: 2.5,
	}, inst.Costs)
	require.NoError(t, transport.Validate(inst))
}

func TestParseInstance_BadYAML(t *testing.T) {
	_, err := transport.ParseInstance([]byte("warehouses: [not: {valid"))
	assert.Error(t, err)
}

func TestLoadInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleInstance), 0o644))

	inst, err := transport.LoadInstance(path)
	require.NoError(t, err)
	assert.Len(t, inst.Warehouses, 2)

	result := transport.Solve(inst)
	require.Equal(t, transport.StatusOptimal, result.Status, result.Message)
	assert.InDelta(t, 200.0, result.Plan.TotalCost, 1e-6)
}

func TestLoadInstance_MissingFile(t *testing.T) {
	_, err := transport.LoadInstance(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
