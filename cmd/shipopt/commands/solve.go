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

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/optkit/shipopt/mip"
	"github.com/optkit/shipopt/transport"
)

func solveCmd() *cobra.Command {
	params := mip.DefaultParameters()

	cmd := &cobra.Command{
		Use:   "solve <instance.yaml>",
		Short: "Compute the minimum-cost shipping plan for an instance file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := transport.LoadInstance(args[0])
			if err != nil {
				return err
			}

			result := transport.SolveWithParameters(inst, params)
			fmt.Printf("Status: %s\n", result.Status)

			switch result.Status {
			case transport.StatusOptimal:
				printPlan(result.Plan)
				return nil
			case transport.StatusError:
				return fmt.Errorf("solve failed: %s", result.Message)
			default:
				if result.Message != "" {
					fmt.Println(result.Message)
				}
				return nil
			}
		},
	}

	cmd.Flags().IntVar(&params.MaxIterations, "max-iter", params.MaxIterations, "simplex iteration limit per relaxation")
	cmd.Flags().IntVar(&params.MaxNodes, "max-nodes", params.MaxNodes, "branch-and-bound node limit")
	cmd.Flags().Float64Var(&params.Tolerance, "tol", params.Tolerance, "simplex pivot tolerance")
	cmd.Flags().BoolVarP(&params.EnableOutput, "verbose", "v", false, "log solver progress")

	return cmd
}

func printPlan(plan *transport.Plan) {
	if len(plan.Shipments) == 0 {
		fmt.Println("Nothing to ship.")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WAREHOUSE\tCUSTOMER\tUNITS\tUNIT COST\tCOST")
	for _, s := range plan.Shipments {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\n", s.Warehouse, s.Customer, s.Units, s.UnitCost, s.Cost)
	}
	tw.Flush()
	fmt.Printf("Total cost: %.2f\n", plan.TotalCost)
}
