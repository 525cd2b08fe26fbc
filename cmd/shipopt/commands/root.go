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

// Package commands implements the shipopt command line interface, the
// presentation layer around the transport solve engine.
package commands

import (
	"github.com/spf13/cobra"
)

// Execute runs the shipopt CLI.
func Execute() error {
	root := &cobra.Command{
		Use:   "shipopt",
		Short: "Minimum-cost warehouse shipping planner",
		Long: `shipopt computes the lowest-cost shipping plan from a set of
warehouses with finite capacity to a set of customers with fixed demand,
given a per-unit cost for every warehouse-customer lane. The plan is the
exact optimum of the underlying integer program.`,
		SilenceUsage: true,
	}

	root.AddCommand(solveCmd())

	return root.Execute()
}
