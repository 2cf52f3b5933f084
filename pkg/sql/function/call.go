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

package function

import (
	"context"

	"github.com/petreldb/petrel/pkg/common/perr"
	"github.com/petreldb/petrel/pkg/container/types"
	"github.com/petreldb/petrel/pkg/container/value"
	"github.com/petreldb/petrel/pkg/frontend"
	"github.com/petreldb/petrel/pkg/sql/expr"
)

// Call is one occurrence of a compatibility function in a statement's
// expression tree.  It holds a shared descriptor and owns its argument
// expressions.  A Call belongs to exactly one statement and is not safe for
// concurrent mutation; optimization happens once, before execution starts.
type Call struct {
	info *FunctionInfo
	args []expr.Expression
	typ  types.T
}

var _ expr.Expression = (*Call)(nil)

// NewCall binds a parsed call site to its descriptor.  The argument count is
// validated here, at bind time; a count outside the function's accepted set
// aborts statement preparation.
func NewCall(ctx context.Context, info *FunctionInfo, args []expr.Expression) (*Call, error) {
	if err := info.CheckArgCount(ctx, len(args)); err != nil {
		return nil, err
	}
	return &Call{info: info, args: args}, nil
}

func (c *Call) Info() *FunctionInfo {
	return c.info
}

func (c *Call) IsConstant() bool {
	return false
}

func (c *Call) Typ() types.T {
	if c.typ == types.T_any {
		return c.info.retType
	}
	return c.typ
}

// Optimize rewrites every argument in place and, when the function is
// deterministic and all present arguments ended up constant, evaluates the
// call eagerly and replaces it with a literal.  A missing trailing argument
// does not break constancy.
func (c *Call) Optimize(ses *frontend.Session) (expr.Expression, error) {
	allConst := c.info.deterministic
	for i, e := range c.args {
		if e == nil {
			continue
		}
		oe, err := e.Optimize(ses)
		if err != nil {
			return nil, err
		}
		c.args[i] = oe
		if !oe.IsConstant() {
			allConst = false
		}
	}
	if allConst {
		v, err := c.Eval(ses)
		if err != nil {
			return nil, err
		}
		return expr.NewValue(v), nil
	}
	c.typ = c.info.retType
	return c, nil
}

// Eval resolves the arguments and dispatches to the function's
// implementation.  For null-propagating functions any NULL argument yields
// NULL without invoking function logic.
func (c *Call) Eval(ses *frontend.Session) (value.Value, error) {
	vals := make([]value.Value, len(c.args))
	got := make([]bool, len(c.args))
	if c.info.nullPropagating {
		for i, e := range c.args {
			if e == nil {
				continue
			}
			v, err := e.Eval(ses)
			if err != nil {
				return value.Null, err
			}
			if v.IsNull() {
				return value.Null, nil
			}
			vals[i], got[i] = v, true
		}
	}
	var slots [3]*value.Value
	for i := range slots {
		v, ok, err := c.argValue(ses, vals, got, i)
		if err != nil {
			return value.Null, err
		}
		if ok {
			vv := v
			slots[i] = &vv
		}
	}
	return c.evalWithArgs(ses, slots[0], slots[1], slots[2])
}

// argValue resolves one argument slot.  A slot beyond the supplied argument
// list is absent, which is distinct from NULL.
func (c *Call) argValue(ses *frontend.Session, vals []value.Value, got []bool, i int) (value.Value, bool, error) {
	if i >= len(c.args) || c.args[i] == nil {
		return value.Null, false, nil
	}
	if got[i] {
		return vals[i], true, nil
	}
	v, err := c.args[i].Eval(ses)
	if err != nil {
		return value.Null, false, err
	}
	return v, true, nil
}

func (c *Call) evalWithArgs(ses *frontend.Session, v0, v1, v2 *value.Value) (value.Value, error) {
	switch c.info.code {
	case pgCurrtid2:
		// transaction id tracking is not implemented
		return value.NewInt32(1), nil
	case pgHasDatabasePrivilege, pgHasTablePrivilege, pgTableIsVisible:
		// privilege and search-path introspection are not implemented
		return value.NewBool(true), nil
	case pgVersion:
		return value.NewVarchar(versionString(ses)), nil
	case pgObjDescription, pgGetExpr:
		// not implemented
		return value.Null, nil
	case pgEncodingToChar:
		code, err := v0.Int32()
		if err != nil {
			return value.Null, err
		}
		return value.NewVarchar(encodingToChar(code)), nil
	case pgGetIndexdef:
		return getIndexdef(ses, v0, v1, v2)
	case pgGetUserbyid:
		uid, err := v0.Int32()
		if err != nil {
			return value.Null, err
		}
		return value.NewVarchar(getUserbyid(ses, uid)), nil
	case pgPostmasterStartTime:
		return value.NewTimestampTZ(ses.System().StartTime()), nil
	case pgRelationSize:
		// optional second argument is ignored
		return relationSize(ses, *v0)
	case pgSetConfig:
		// the setting is not applied; the call still returns its value
		return value.NewVarchar(v1.ToText()), nil
	case pgCurrentDatabase:
		return value.NewVarchar(ses.Database()), nil
	}
	panic(perr.NewInternalErrorNoCtx("pg function code %d has no implementation", c.info.code))
}
