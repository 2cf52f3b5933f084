// Copyright 2024 - 2025 PetrelDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package expr defines the expression contract shared by the binder, the
// optimizer and the evaluator.
package expr

import (
	"github.com/petreldb/petrel/pkg/container/types"
	"github.com/petreldb/petrel/pkg/container/value"
	"github.com/petreldb/petrel/pkg/frontend"
)

// Expression is one node of a statement's expression tree.
type Expression interface {
	// Optimize rewrites the node for execution and may replace it with a
	// cheaper equivalent, typically a literal when the node folds to a
	// compile-time constant.
	Optimize(ses *frontend.Session) (Expression, error)

	// Eval produces the node's value for the current row or call.
	Eval(ses *frontend.Session) (value.Value, error)

	// IsConstant reports whether the node always evaluates to the same
	// value within a statement.
	IsConstant() bool

	// Typ is the semantic type of the value the node produces.
	Typ() types.T
}

// ValueExpr is a literal expression wrapping a single value.
type ValueExpr struct {
	v value.Value
}

// NewValue wraps a value in a literal expression.
func NewValue(v value.Value) *ValueExpr {
	return &ValueExpr{v: v}
}

func (e *ValueExpr) Optimize(_ *frontend.Session) (Expression, error) {
	return e, nil
}

func (e *ValueExpr) Eval(_ *frontend.Session) (value.Value, error) {
	return e.v, nil
}

func (e *ValueExpr) IsConstant() bool {
	return true
}

func (e *ValueExpr) Typ() types.T {
	return e.v.Typ()
}
