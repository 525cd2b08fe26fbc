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

// Package mip offers a small API to build and solve mixed-integer linear
// programs.
//
// The `Builder` struct accumulates a Model value and provides helper methods
// for adding variables and linear constraints. The `IntVar` and `NumVar`
// structs are references to specific variables in the model and the
// `LinearExpr` struct provides helper methods for creating constraints and
// the objective from expressions with many variables and coefficients.
//
// Models are solved exactly: the LP relaxation is handled by the simplex
// implementation in github.com/willauld/lpsimplex, and integrality is
// enforced by branch-and-bound.
package mip

import (
	"errors"
	"fmt"
	"math"

	log "github.com/golang/glog"
)

// ErrMixedModels holds the error when elements added to a model are different.
var ErrMixedModels = errors.New("elements are not part of the same model")

type (
	// VarIndex is the index of a variable in the model.
	VarIndex int32
	// ConstrIndex is the index of a constraint in the model.
	ConstrIndex int32
)

// Infinity returns the value used for unbounded variable and constraint
// bounds.
func Infinity() float64 {
	return math.Inf(1)
}

// Variable is a decision variable of a Model.
type Variable struct {
	Name    string
	Lower   float64
	Upper   float64
	Integer bool
}

// LinearConstraint is a constraint of the form
// `Lower <= sum_i Coeffs[i]*x[Vars[i]] <= Upper`.
type LinearConstraint struct {
	Name   string
	Lower  float64
	Upper  float64
	Vars   []VarIndex
	Coeffs []float64
}

// Objective is the linear objective of a Model. The solver minimizes the
// expression unless Maximize is set.
type Objective struct {
	Vars     []VarIndex
	Coeffs   []float64
	Offset   float64
	Maximize bool
}

// Model is the built form of a mixed-integer linear program. It is produced
// by Builder.Build and consumed by Solve.
type Model struct {
	Name        string
	Variables   []*Variable
	Constraints []*LinearConstraint
	Objective   *Objective
}

// LinearArgument provides an interface for IntVar, NumVar, and LinearExpr.
type LinearArgument interface {
	addToLinearExpr(e *LinearExpr, c float64)
	evaluateSolutionValue(r *Response) float64
	// owner returns the Builder the argument belongs to, or nil for
	// arguments that do not reference one (LinearExpr, constants).
	owner() *Builder
}

// LinearExpr is a container for a linear expression.
type LinearExpr struct {
	varCoeffs []varCoeff
	offset    float64
}

type varCoeff struct {
	ind   VarIndex
	coeff float64
}

// NewLinearExpr creates a new empty LinearExpr.
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{}
}

// NewConstant creates and returns a LinearExpr containing the constant `c`.
func NewConstant(c float64) *LinearExpr {
	return &LinearExpr{offset: c}
}

// Add adds the linear argument term to the LinearExpr and returns itself.
func (l *LinearExpr) Add(la LinearArgument) *LinearExpr {
	l.AddTerm(la, 1)
	return l
}

// AddConstant adds the constant to the LinearExpr and returns itself.
func (l *LinearExpr) AddConstant(c float64) *LinearExpr {
	l.offset += c
	return l
}

// AddTerm adds the linear argument term with the given coefficient to the
// LinearExpr and returns itself.
func (l *LinearExpr) AddTerm(la LinearArgument, coeff float64) *LinearExpr {
	la.addToLinearExpr(l, coeff)
	return l
}

// AddSum adds the sum of the linear arguments to the LinearExpr and returns
// itself.
func (l *LinearExpr) AddSum(las ...LinearArgument) *LinearExpr {
	for _, la := range las {
		l.Add(la)
	}
	return l
}

// AddWeightedSum adds the linear arguments with the corresponding
// coefficients to the LinearExpr and returns itself.
func (l *LinearExpr) AddWeightedSum(las []LinearArgument, coeffs []float64) *LinearExpr {
	if len(coeffs) != len(las) {
		log.Fatalf("las and coeffs must be the same length: %v != %v", len(las), len(coeffs))
	}
	for i, la := range las {
		l.AddTerm(la, coeffs[i])
	}
	return l
}

func (l *LinearExpr) addToLinearExpr(e *LinearExpr, c float64) {
	for _, vc := range l.varCoeffs {
		e.varCoeffs = append(e.varCoeffs, varCoeff{ind: vc.ind, coeff: vc.coeff * c})
	}
	e.offset += l.offset * c
}

func (l *LinearExpr) evaluateSolutionValue(r *Response) float64 {
	result := l.offset
	for _, vc := range l.varCoeffs {
		result += r.Solution[vc.ind] * vc.coeff
	}
	return result
}

func (l *LinearExpr) owner() *Builder { return nil }

// IntVar is a reference to an integer variable in the model.
type IntVar struct {
	ind VarIndex
	mb  *Builder
}

// Name returns the name of the variable.
func (i IntVar) Name() string {
	return i.mb.model.Variables[i.ind].Name
}

// Index returns the index of the variable.
func (i IntVar) Index() VarIndex {
	return i.ind
}

// WithName sets the name of the variable.
func (i IntVar) WithName(s string) IntVar {
	i.mb.model.Variables[i.ind].Name = s
	return i
}

func (i IntVar) addToLinearExpr(e *LinearExpr, c float64) {
	e.varCoeffs = append(e.varCoeffs, varCoeff{ind: i.ind, coeff: c})
}

func (i IntVar) evaluateSolutionValue(r *Response) float64 {
	return r.Solution[i.ind]
}

func (i IntVar) owner() *Builder { return i.mb }

// NumVar is a reference to a continuous variable in the model.
type NumVar struct {
	ind VarIndex
	mb  *Builder
}

// Name returns the name of the variable.
func (n NumVar) Name() string {
	return n.mb.model.Variables[n.ind].Name
}

// Index returns the index of the variable.
func (n NumVar) Index() VarIndex {
	return n.ind
}

// WithName sets the name of the variable.
func (n NumVar) WithName(s string) NumVar {
	n.mb.model.Variables[n.ind].Name = s
	return n
}

func (n NumVar) addToLinearExpr(e *LinearExpr, c float64) {
	e.varCoeffs = append(e.varCoeffs, varCoeff{ind: n.ind, coeff: c})
}

func (n NumVar) evaluateSolutionValue(r *Response) float64 {
	return r.Solution[n.ind]
}

func (n NumVar) owner() *Builder { return n.mb }

// Constraint is a reference to a constraint in the model.
type Constraint struct {
	ind ConstrIndex
	mb  *Builder
}

// WithName sets the name of the constraint.
func (c Constraint) WithName(s string) Constraint {
	c.mb.model.Constraints[c.ind].Name = s
	return c
}

// Name returns the name of the constraint.
func (c Constraint) Name() string {
	return c.mb.model.Constraints[c.ind].Name
}

// Index returns the index of the constraint.
func (c Constraint) Index() ConstrIndex {
	return c.ind
}

// Builder accumulates variables, constraints, and the objective of a Model.
type Builder struct {
	model *Model
	// The first and only the first error is reported in Build.
	err error
}

// NewBuilder creates and returns a new model Builder.
func NewBuilder(name string) *Builder {
	return &Builder{model: &Model{Name: name}}
}

// checkSameModelAndSetErrorf returns true if `mb` and `mb2` point to the same
// Builder. If false, an error with the error message `format` is set on `mb`
// if `mb.err` is nil.
func (mb *Builder) checkSameModelAndSetErrorf(mb2 *Builder, format string, a ...any) bool {
	if mb == mb2 {
		return true
	}
	var args = make([]any, len(a)+1)
	copy(args, a)
	args[len(a)] = ErrMixedModels
	err := fmt.Errorf(format+": %w", args...)
	log.Errorf("%v", err)
	if mb.err == nil {
		mb.err = err
	}
	return false
}

func (mb *Builder) newVariable(lb, ub float64, integer bool) VarIndex {
	ind := VarIndex(len(mb.model.Variables))
	mb.model.Variables = append(mb.model.Variables, &Variable{Lower: lb, Upper: ub, Integer: integer})
	return ind
}

// NewIntVar creates a new integer variable with domain `[lb,ub]`.
func (mb *Builder) NewIntVar(lb, ub float64) IntVar {
	return IntVar{ind: mb.newVariable(lb, ub, true), mb: mb}
}

// NewNumVar creates a new continuous variable with domain `[lb,ub]`.
func (mb *Builder) NewNumVar(lb, ub float64) NumVar {
	return NumVar{ind: mb.newVariable(lb, ub, false), mb: mb}
}

func (mb *Builder) checkOwnership(la LinearArgument, what string) {
	if o := la.owner(); o != nil {
		mb.checkSameModelAndSetErrorf(o, "invalid parameter %s added to constraint %v of model %q", what, len(mb.model.Constraints), mb.model.Name)
	}
}

func (mb *Builder) appendConstraint(le *LinearExpr, lb, ub float64) Constraint {
	ind := ConstrIndex(len(mb.model.Constraints))
	ct := &LinearConstraint{Lower: lb - le.offset, Upper: ub - le.offset}
	for _, vc := range le.varCoeffs {
		ct.Vars = append(ct.Vars, vc.ind)
		ct.Coeffs = append(ct.Coeffs, vc.coeff)
	}
	mb.model.Constraints = append(mb.model.Constraints, ct)
	return Constraint{ind: ind, mb: mb}
}

// AddLinearConstraint adds the linear constraint `lb <= expr <= ub`.
func (mb *Builder) AddLinearConstraint(expr LinearArgument, lb, ub float64) Constraint {
	mb.checkOwnership(expr, "expr")
	linExpr := NewLinearExpr().Add(expr)
	return mb.appendConstraint(linExpr, lb, ub)
}

// AddEquality adds the linear constraint `lhs == rhs`.
func (mb *Builder) AddEquality(lhs, rhs LinearArgument) Constraint {
	mb.checkOwnership(lhs, "lhs")
	mb.checkOwnership(rhs, "rhs")
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)
	return mb.appendConstraint(diff, 0, 0)
}

// AddLessOrEqual adds the linear constraint `lhs <= rhs`.
func (mb *Builder) AddLessOrEqual(lhs, rhs LinearArgument) Constraint {
	mb.checkOwnership(lhs, "lhs")
	mb.checkOwnership(rhs, "rhs")
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)
	return mb.appendConstraint(diff, math.Inf(-1), 0)
}

// AddGreaterOrEqual adds the linear constraint `lhs >= rhs`.
func (mb *Builder) AddGreaterOrEqual(lhs, rhs LinearArgument) Constraint {
	mb.checkOwnership(lhs, "lhs")
	mb.checkOwnership(rhs, "rhs")
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)
	return mb.appendConstraint(diff, 0, math.Inf(1))
}

func (mb *Builder) setObjective(obj LinearArgument, maximize bool) {
	o := NewLinearExpr().Add(obj)

	opb := &Objective{Offset: o.offset, Maximize: maximize}
	for _, vc := range o.varCoeffs {
		opb.Vars = append(opb.Vars, vc.ind)
		opb.Coeffs = append(opb.Coeffs, vc.coeff)
	}

	mb.model.Objective = opb
}

// Minimize adds a linear minimization objective.
func (mb *Builder) Minimize(obj LinearArgument) {
	mb.setObjective(obj, false)
}

// Maximize adds a linear maximization objective.
func (mb *Builder) Maximize(obj LinearArgument) {
	mb.setObjective(obj, true)
}

// Build returns the built model. The model returned is a pointer to the model
// in Builder, and if modified, future calls to the Builder API can fail or
// result in an invalid model.
//
// Build returns an error when invalid parameters have been used during model
// building (e.g. passing variables from other builders).
func (mb *Builder) Build() (*Model, error) {
	if mb.err != nil {
		return nil, mb.err
	}
	return mb.model, nil
}
