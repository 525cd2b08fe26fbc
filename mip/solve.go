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
	"fmt"
	"math"

	log "github.com/golang/glog"
	"github.com/willauld/lpsimplex"
)

// Simplex termination codes reported by lpsimplex, following the scipy
// linprog convention.
const (
	simplexOptimal        = 0
	simplexIterationLimit = 1
	simplexInfeasible     = 2
	simplexUnbounded      = 3
	simplexSingular       = 4
)

// integralityTol is the largest distance from the nearest integer at which a
// relaxation value still counts as integral.
const integralityTol = 1e-6

// Parameters control a solve.
type Parameters struct {
	// MaxIterations bounds the simplex iterations of a single relaxation
	// solve.
	MaxIterations int
	// MaxNodes bounds the number of branch-and-bound nodes explored.
	MaxNodes int
	// Tolerance is the pivot tolerance passed to the simplex solver.
	Tolerance float64
	// EnableOutput turns on per-node progress logging.
	EnableOutput bool
}

// DefaultParameters returns the parameters used by Solve.
func DefaultParameters() Parameters {
	return Parameters{
		MaxIterations: 4000,
		MaxNodes:      10000,
		Tolerance:     1e-9,
	}
}

// Solve solves the model with default parameters and returns a Response.
func Solve(m *Model) (*Response, error) {
	return SolveWithParameters(m, DefaultParameters())
}

// SolveWithParameters solves the model and returns a Response.
//
// The LP relaxation at each node is solved with the simplex method;
// integrality of the model's integer variables is enforced by depth-first
// branch-and-bound with most-fractional branching. A returned error means the
// solve itself could not be run; inconclusive terminations are reported
// through Response.Status instead.
func SolveWithParameters(m *Model, params Parameters) (*Response, error) {
	if m == nil {
		return nil, errors.New("mip: nil model")
	}
	if params.MaxIterations <= 0 || params.MaxNodes <= 0 {
		return nil, fmt.Errorf("mip: non-positive iteration or node limit in parameters %+v", params)
	}

	if msg, ok := validate(m); !ok {
		return &Response{Status: StatusModelInvalid, Message: msg}, nil
	}
	if len(m.Variables) == 0 {
		return solveDegenerate(m), nil
	}
	return newSearch(m, params).run()
}

// validate reports whether the model bounds are consistent.
func validate(m *Model) (string, bool) {
	for i, v := range m.Variables {
		if math.IsNaN(v.Lower) || math.IsNaN(v.Upper) || v.Lower > v.Upper {
			return fmt.Sprintf("variable %d has invalid domain [%v,%v]", i, v.Lower, v.Upper), false
		}
	}
	for i, ct := range m.Constraints {
		if math.IsNaN(ct.Lower) || math.IsNaN(ct.Upper) || ct.Lower > ct.Upper {
			return fmt.Sprintf("constraint %d has invalid bounds [%v,%v]", i, ct.Lower, ct.Upper), false
		}
		if len(ct.Vars) != len(ct.Coeffs) {
			return fmt.Sprintf("constraint %d has %d vars but %d coefficients", i, len(ct.Vars), len(ct.Coeffs)), false
		}
	}
	return "", true
}

// solveDegenerate handles models without variables. Every constraint row
// evaluates to zero, so the model is optimal iff zero lies within each
// constraint's bounds.
func solveDegenerate(m *Model) *Response {
	for i, ct := range m.Constraints {
		if ct.Lower > 0 || ct.Upper < 0 {
			return &Response{
				Status:  StatusInfeasible,
				Message: fmt.Sprintf("constraint %d cannot be satisfied by the empty model", i),
			}
		}
	}
	res := &Response{Status: StatusOptimal}
	if m.Objective != nil {
		res.ObjectiveValue = m.Objective.Offset
	}
	return res
}

// standardForm is the model rewritten for the simplex solver: minimize c·x
// subject to Aub·x <= bub, Aeq·x == beq, and per-variable bounds.
type standardForm struct {
	c        []float64
	aub      [][]float64
	bub      []float64
	aeq      [][]float64
	beq      []float64
	negate   bool
	offset   float64
	integers []int
}

func toStandardForm(m *Model) *standardForm {
	n := len(m.Variables)
	sf := &standardForm{c: make([]float64, n)}

	if obj := m.Objective; obj != nil {
		sf.negate = obj.Maximize
		sf.offset = obj.Offset
		for i, ind := range obj.Vars {
			coeff := obj.Coeffs[i]
			if sf.negate {
				coeff = -coeff
			}
			sf.c[ind] += coeff
		}
	}

	for _, ct := range m.Constraints {
		row := make([]float64, n)
		for i, ind := range ct.Vars {
			row[ind] += ct.Coeffs[i]
		}
		switch {
		case ct.Lower == ct.Upper:
			sf.aeq = append(sf.aeq, row)
			sf.beq = append(sf.beq, ct.Upper)
		default:
			if !math.IsInf(ct.Upper, 1) {
				sf.aub = append(sf.aub, row)
				sf.bub = append(sf.bub, ct.Upper)
			}
			if !math.IsInf(ct.Lower, -1) {
				neg := make([]float64, n)
				for j, v := range row {
					neg[j] = -v
				}
				sf.aub = append(sf.aub, neg)
				sf.bub = append(sf.bub, -ct.Lower)
			}
		}
	}

	for i, v := range m.Variables {
		if v.Integer {
			sf.integers = append(sf.integers, i)
		}
	}

	return sf
}

// node is one subproblem of the branch-and-bound tree, defined by tightened
// variable bounds.
type node struct {
	lower []float64
	upper []float64
	depth int
}

type search struct {
	m      *Model
	sf     *standardForm
	params Parameters
	// relax solves one node's LP relaxation. It is a field so that tests
	// can exercise the termination handling with synthetic solver results.
	relax func(node) lpsimplex.OptResult

	bestObj    float64
	bestX      []float64
	iterations int
	nodes      int
}

func newSearch(m *Model, params Parameters) *search {
	s := &search{
		m:       m,
		sf:      toStandardForm(m),
		params:  params,
		bestObj: math.Inf(1),
	}
	s.relax = s.solveRelaxation
	return s
}

func (s *search) run() (*Response, error) {
	rootLower := make([]float64, len(s.m.Variables))
	rootUpper := make([]float64, len(s.m.Variables))
	for i, v := range s.m.Variables {
		rootLower[i], rootUpper[i] = v.Lower, v.Upper
	}

	stack := []node{{lower: rootLower, upper: rootUpper}}
	for len(stack) > 0 {
		if s.nodes >= s.params.MaxNodes {
			return s.finish(StatusNotSolved, fmt.Sprintf("node limit %d reached", s.params.MaxNodes)), nil
		}
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		atRoot := s.nodes == 0
		s.nodes++

		res := s.relax(nd)
		s.iterations += res.Nitr
		if s.params.EnableOutput {
			log.Infof("node %d depth %d: simplex status %d obj %v after %d iterations", s.nodes, nd.depth, res.Status, res.Fun, res.Nitr)
		}

		switch res.Status {
		case simplexOptimal:
			// Solved relaxation, handled below.
		case simplexIterationLimit:
			return s.finish(StatusNotSolved, fmt.Sprintf("simplex iteration limit %d reached: %s", s.params.MaxIterations, res.Message)), nil
		case simplexUnbounded:
			// Unboundedness of the integer program only follows from the
			// root relaxation; a deeper node's ray need not contain an
			// integer point, so stop without claiming either way there.
			if atRoot {
				return s.finish(StatusUnbounded, res.Message), nil
			}
			return s.finish(StatusNotSolved, fmt.Sprintf("relaxation unbounded at a branched node: %s", res.Message)), nil
		case simplexInfeasible:
			if atRoot {
				return s.finish(StatusInfeasible, res.Message), nil
			}
			continue
		default:
			// Singular matrix or any other failure code: the relaxation
			// values are unusable and must never prune the tree or become
			// the incumbent.
			return s.finish(StatusNotSolved, fmt.Sprintf("simplex failed with status %d: %s", res.Status, res.Message)), nil
		}

		if res.Fun >= s.bestObj-s.params.Tolerance {
			continue
		}
		branchVar, ok := s.mostFractional(res.X)
		if !ok {
			s.bestObj = res.Fun
			s.bestX = append([]float64(nil), res.X...)
			continue
		}

		v := res.X[branchVar]
		down := nd.child(branchVar, math.Inf(-1), math.Floor(v))
		up := nd.child(branchVar, math.Ceil(v), math.Inf(1))
		if down != nil {
			stack = append(stack, *down)
		}
		if up != nil {
			stack = append(stack, *up)
		}
	}

	if s.bestX == nil {
		return s.finish(StatusInfeasible, "no integer feasible point in the search tree"), nil
	}
	return s.finish(StatusOptimal, ""), nil
}

func (s *search) solveRelaxation(nd node) lpsimplex.OptResult {
	bounds := make([]lpsimplex.Bound, len(nd.lower))
	for i := range bounds {
		bounds[i] = lpsimplex.Bound{Lb: nd.lower[i], Ub: nd.upper[i]}
	}
	return lpsimplex.LPSimplex(s.sf.c, s.sf.aub, s.sf.bub, s.sf.aeq, s.sf.beq, bounds,
		lpsimplex.Callbackfunc(nil), false, s.params.MaxIterations, s.params.Tolerance, false)
}

// mostFractional returns the integer variable whose relaxation value is
// farthest from an integer, or ok=false when the point is integral.
func (s *search) mostFractional(x []float64) (int, bool) {
	best, bestFrac := -1, integralityTol
	for _, i := range s.sf.integers {
		frac := math.Abs(x[i] - math.Round(x[i]))
		if frac > bestFrac {
			best, bestFrac = i, frac
		}
	}
	return best, best >= 0
}

// child derives a subproblem with the branch variable's bounds tightened to
// [lb,ub] intersected with the node's bounds. Returns nil when the
// intersection is empty.
func (nd node) child(ind int, lb, ub float64) *node {
	lower := append([]float64(nil), nd.lower...)
	upper := append([]float64(nil), nd.upper...)
	lower[ind] = math.Max(lower[ind], lb)
	upper[ind] = math.Min(upper[ind], ub)
	if lower[ind] > upper[ind] {
		return nil
	}
	return &node{lower: lower, upper: upper, depth: nd.depth + 1}
}

func (s *search) finish(status Status, msg string) *Response {
	res := &Response{
		Status:     status,
		Message:    msg,
		Iterations: s.iterations,
		Nodes:      s.nodes,
	}
	if status != StatusOptimal {
		return res
	}
	res.Solution = s.bestX
	obj := s.bestObj
	if s.sf.negate {
		obj = -obj
	}
	res.ObjectiveValue = obj + s.sf.offset
	return res
}
