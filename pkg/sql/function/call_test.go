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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petreldb/petrel/pkg/container/types"
	"github.com/petreldb/petrel/pkg/container/value"
	"github.com/petreldb/petrel/pkg/frontend"
	"github.com/petreldb/petrel/pkg/sql/expr"
)

// colRef stands in for an expression whose value is only known at run time.
type colRef struct {
	v value.Value
}

func (c *colRef) Optimize(_ *frontend.Session) (expr.Expression, error) { return c, nil }
func (c *colRef) Eval(_ *frontend.Session) (value.Value, error)        { return c.v, nil }
func (c *colRef) IsConstant() bool                                     { return false }
func (c *colRef) Typ() types.T                                         { return c.v.Typ() }

func mustCall(t *testing.T, reg *Registry, name string, args ...expr.Expression) *Call {
	t.Helper()
	f, ok := reg.Lookup(name)
	require.True(t, ok, name)
	c, err := NewCall(context.Background(), f, args)
	require.NoError(t, err)
	return c
}

func TestOptimizeFoldsDeterministicConstants(t *testing.T) {
	env := newTestEnv(t)
	ses := env.session(env.nadia)

	c := mustCall(t, env.reg, "PG_ENCODING_TO_CHAR", constInt32(6))
	opt, err := c.Optimize(ses)
	require.NoError(t, err)

	folded, ok := opt.(*expr.ValueExpr)
	require.True(t, ok, "deterministic call over constants must fold to a literal")
	v, err := folded.Eval(ses)
	require.NoError(t, err)
	require.Equal(t, "UTF8", v.Str())
}

func TestOptimizeFoldsZeroArgVersion(t *testing.T) {
	env := newTestEnv(t)
	ses := env.session(env.nadia)

	c := mustCall(t, env.reg, "VERSION")
	opt, err := c.Optimize(ses)
	require.NoError(t, err)

	folded, ok := opt.(*expr.ValueExpr)
	require.True(t, ok)
	v, err := folded.Eval(ses)
	require.NoError(t, err)
	require.Equal(t, "PostgreSQL 8.2.23 server protocol using Petrel 0.3.0", v.Str())
}

func TestOptimizeKeepsNonConstantArgs(t *testing.T) {
	env := newTestEnv(t)
	ses := env.session(env.nadia)

	c := mustCall(t, env.reg, "PG_ENCODING_TO_CHAR", &colRef{v: value.NewInt32(8)})
	opt, err := c.Optimize(ses)
	require.NoError(t, err)

	kept, ok := opt.(*Call)
	require.True(t, ok, "a call with runtime arguments must not fold")
	require.Equal(t, types.T_varchar, kept.Typ())

	v, err := kept.Eval(ses)
	require.NoError(t, err)
	require.Equal(t, "LATIN1", v.Str())
}

func TestOptimizeKeepsNonDeterministicCalls(t *testing.T) {
	env := newTestEnv(t)
	ses := env.session(env.nadia)

	c := mustCall(t, env.reg, "PG_TABLE_IS_VISIBLE", constInt32(20))
	opt, err := c.Optimize(ses)
	require.NoError(t, err)

	_, ok := opt.(*Call)
	require.True(t, ok, "non-deterministic calls must survive optimization")
}

func TestEvalPropagatesNull(t *testing.T) {
	env := newTestEnv(t)
	ses := env.session(env.nadia)

	// With a NULL argument the call must return NULL without touching the
	// catalog; a NULL relation name would otherwise fail name resolution.
	c := mustCall(t, env.reg, "PG_RELATION_SIZE", expr.NewValue(value.Null))
	v, err := c.Eval(ses)
	require.NoError(t, err)
	require.True(t, v.IsNull())

	c = mustCall(t, env.reg, "SET_CONFIG",
		constStr("search_path"), expr.NewValue(value.Null), constBool(false))
	v, err = c.Eval(ses)
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestEvalSetConfigEchoesValue(t *testing.T) {
	env := newTestEnv(t)
	ses := env.session(env.nadia)

	c := mustCall(t, env.reg, "SET_CONFIG",
		constStr("search_path"), constStr("42"), constBool(false))
	v, err := c.Eval(ses)
	require.NoError(t, err)
	require.Equal(t, "42", v.Str())

	// non-text second argument is echoed as text
	c = mustCall(t, env.reg, "SET_CONFIG",
		constStr("work_mem"), constInt32(64), constBool(true))
	v, err = c.Eval(ses)
	require.NoError(t, err)
	require.Equal(t, "64", v.ToText())
}

func TestEvalCurrtid2(t *testing.T) {
	env := newTestEnv(t)
	ses := env.session(env.nadia)

	c := mustCall(t, env.reg, "CURRTID2", constStr("pets"), constStr("(0,1)"))
	v, err := c.Eval(ses)
	require.NoError(t, err)
	require.Equal(t, types.T_int32, v.Typ())
	n, err := v.Int32()
	require.NoError(t, err)
	require.Equal(t, int32(1), n)
}
