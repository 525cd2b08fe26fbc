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

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuilder_NewVariables(t *testing.T) {
	mb := NewBuilder("vars")

	x := mb.NewIntVar(0, 10).WithName("x")
	y := mb.NewNumVar(-1, math.Inf(1)).WithName("y")

	if got, want := x.Index(), VarIndex(0); got != want {
		t.Errorf("x.Index() = %v, want %v", got, want)
	}
	if got, want := y.Index(), VarIndex(1); got != want {
		t.Errorf("y.Index() = %v, want %v", got, want)
	}
	if got, want := x.Name(), "x"; got != want {
		t.Errorf("x.Name() = %v, want %v", got, want)
	}

	m, err := mb.Build()
	if err != nil {
		t.Fatalf("Build() returned with unexpected error %v", err)
	}
	want := []*Variable{
		{Name: "x", Lower: 0, Upper: 10, Integer: true},
		{Name: "y", Lower: -1, Upper: math.Inf(1)},
	}
	if diff := cmp.Diff(want, m.Variables); diff != "" {
		t.Errorf("Build() variables mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_Constraints(t *testing.T) {
	testCases := []struct {
		name string
		add  func(mb *Builder, x IntVar, y IntVar)
		want *LinearConstraint
	}{
		{
			name: "LinearConstraintFoldsOffset",
			add: func(mb *Builder, x, y IntVar) {
				expr := NewLinearExpr().AddTerm(x, 2).Add(y).AddConstant(3)
				mb.AddLinearConstraint(expr, 0, 10)
			},
			want: &LinearConstraint{Lower: -3, Upper: 7, Vars: []VarIndex{0, 1}, Coeffs: []float64{2, 1}},
		},
		{
			name: "Equality",
			add: func(mb *Builder, x, y IntVar) {
				mb.AddEquality(NewLinearExpr().AddSum(x, y), NewConstant(15))
			},
			want: &LinearConstraint{Lower: 15, Upper: 15, Vars: []VarIndex{0, 1}, Coeffs: []float64{1, 1}},
		},
		{
			name: "LessOrEqual",
			add: func(mb *Builder, x, y IntVar) {
				mb.AddLessOrEqual(x, y)
			},
			want: &LinearConstraint{Lower: math.Inf(-1), Upper: 0, Vars: []VarIndex{0, 1}, Coeffs: []float64{1, -1}},
		},
		{
			name: "GreaterOrEqual",
			add: func(mb *Builder, x, y IntVar) {
				mb.AddGreaterOrEqual(x, NewConstant(5))
			},
			want: &LinearConstraint{Lower: 5, Upper: math.Inf(1), Vars: []VarIndex{0}, Coeffs: []float64{1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mb := NewBuilder("constraints")
			x := mb.NewIntVar(0, 100)
			y := mb.NewIntVar(0, 100)
			tc.add(mb, x, y)

			m, err := mb.Build()
			if err != nil {
				t.Fatalf("Build() returned with unexpected error %v", err)
			}
			if len(m.Constraints) != 1 {
				t.Fatalf("Build() returned %d constraints, want 1", len(m.Constraints))
			}
			if diff := cmp.Diff(tc.want, m.Constraints[0]); diff != "" {
				t.Errorf("constraint mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuilder_Objective(t *testing.T) {
	mb := NewBuilder("objective")
	x := mb.NewIntVar(0, 10)
	y := mb.NewIntVar(0, 10)

	mb.Minimize(NewLinearExpr().AddTerm(x, 4).AddTerm(y, 2.5).AddConstant(1))

	m, err := mb.Build()
	if err != nil {
		t.Fatalf("Build() returned with unexpected error %v", err)
	}
	want := &Objective{Vars: []VarIndex{0, 1}, Coeffs: []float64{4, 2.5}, Offset: 1}
	if diff := cmp.Diff(want, m.Objective); diff != "" {
		t.Errorf("objective mismatch (-want +got):\n%s", diff)
	}

	mb.Maximize(NewLinearExpr().Add(x))
	m, err = mb.Build()
	if err != nil {
		t.Fatalf("Build() returned with unexpected error %v", err)
	}
	want = &Objective{Vars: []VarIndex{0}, Coeffs: []float64{1}, Maximize: true}
	if diff := cmp.Diff(want, m.Objective); diff != "" {
		t.Errorf("objective mismatch after Maximize (-want +got):\n%s", diff)
	}
}

func TestBuilder_WeightedSum(t *testing.T) {
	mb := NewBuilder("weighted")
	x := mb.NewIntVar(0, 10)
	y := mb.NewIntVar(0, 10)

	expr := NewLinearExpr().AddWeightedSum([]LinearArgument{x, y}, []float64{3, 7})
	mb.AddLinearConstraint(expr, 0, 21)

	m, err := mb.Build()
	if err != nil {
		t.Fatalf("Build() returned with unexpected error %v", err)
	}
	want := &LinearConstraint{Lower: 0, Upper: 21, Vars: []VarIndex{0, 1}, Coeffs: []float64{3, 7}}
	if diff := cmp.Diff(want, m.Constraints[0]); diff != "" {
		t.Errorf("constraint mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_MixedModels(t *testing.T) {
	mb := NewBuilder("a")
	other := NewBuilder("b")

	x := mb.NewIntVar(0, 10)
	foreign := other.NewIntVar(0, 10)

	mb.AddLessOrEqual(x, foreign)

	if _, err := mb.Build(); !errors.Is(err, ErrMixedModels) {
		t.Errorf("Build() returned error %v, want ErrMixedModels", err)
	}
}

func TestConstraint_WithName(t *testing.T) {
	mb := NewBuilder("names")
	x := mb.NewIntVar(0, 10)

	ct := mb.AddLinearConstraint(x, 0, 5).WithName("cap")
	if got, want := ct.Name(), "cap"; got != want {
		t.Errorf("Name() = %v, want %v", got, want)
	}
	if got, want := ct.Index(), ConstrIndex(0); got != want {
		t.Errorf("Index() = %v, want %v", got, want)
	}
}
