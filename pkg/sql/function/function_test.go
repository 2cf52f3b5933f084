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
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/require"

	"github.com/petreldb/petrel/pkg/catalog"
	"github.com/petreldb/petrel/pkg/common/perr"
	"github.com/petreldb/petrel/pkg/config"
	"github.com/petreldb/petrel/pkg/container/types"
	"github.com/petreldb/petrel/pkg/container/value"
	"github.com/petreldb/petrel/pkg/frontend"
	"github.com/petreldb/petrel/pkg/sql/expr"
)

// testEnv is the catalog fixture shared by the tests in this package.
type testEnv struct {
	reg   *Registry
	cat   *catalog.Catalog
	sys   *frontend.Session
	root  *catalog.User // admin, id 10
	nadia *catalog.User // not admin, id 11
	pets  *catalog.Table
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	var vars config.Variables
	require.NoError(t, vars.LoadInitialValues())

	cat := catalog.New()
	root := cat.CreateUser(10, "root", true)
	nadia := cat.CreateUser(11, "nadia", false)

	pets, err := cat.CreateTable(ctx, 20, "pets", false)
	require.NoError(t, err)
	pets.SetDiskSpaceUsed(8192)
	secrets, err := cat.CreateTable(ctx, 21, "secrets", true)
	require.NoError(t, err)

	cat.CreateIndex(30, "pets_name_idx", pets, "name", "owner")
	cat.CreateIndex(31, "secrets_idx", secrets, "key")

	sys := frontend.NewSession(ctx, cat, &vars, root, vars.DefaultDatabase, nil)
	return &testEnv{
		reg:   NewRegistry(),
		cat:   cat,
		sys:   sys,
		root:  root,
		nadia: nadia,
		pets:  pets,
	}
}

// session opens a client session for the given user.
func (e *testEnv) session(u *catalog.User) *frontend.Session {
	return frontend.NewSession(context.Background(), e.sys.Catalog(), e.sys.Vars(), u, e.sys.Database(), e.sys)
}

func constInt32(v int32) expr.Expression {
	return expr.NewValue(value.NewInt32(v))
}

func constStr(s string) expr.Expression {
	return expr.NewValue(value.NewVarchar(s))
}

func constBool(b bool) expr.Expression {
	return expr.NewValue(value.NewBool(b))
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()

	f, ok := reg.Lookup("PG_GET_USERBYID")
	require.True(t, ok)
	require.Equal(t, "PG_GET_USERBYID", f.Name())
	require.Equal(t, types.T_varchar, f.ResultType())

	// case-insensitive
	lower, ok := reg.Lookup("pg_get_userbyid")
	require.True(t, ok)
	require.Same(t, f, lower)

	_, ok = reg.Lookup("PG_NO_SUCH_FUNCTION")
	require.False(t, ok)
}

func TestRegistryAlias(t *testing.T) {
	reg := NewRegistry()

	db, ok := reg.Lookup("CURRENT_DATABASE")
	require.True(t, ok)
	cat, ok := reg.Lookup("current_catalog")
	require.True(t, ok)

	require.Equal(t, "CURRENT_CATALOG", cat.Name())
	require.Equal(t, db.ResultType(), cat.ResultType())
	require.Equal(t, db.IsDeterministic(), cat.IsDeterministic())

	require.Len(t, reg.Names(), 15)
}

func TestCheckArgCount(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	cases := []struct {
		name string
		ok   []int
		bad  []int
	}{
		{"CURRTID2", []int{2}, []int{0, 1, 3}},
		{"HAS_DATABASE_PRIVILEGE", []int{2, 3}, []int{0, 1, 4}},
		{"HAS_TABLE_PRIVILEGE", []int{2, 3}, []int{1, 4}},
		{"VERSION", []int{0}, []int{1}},
		{"OBJ_DESCRIPTION", []int{1, 2}, []int{0, 3}},
		{"PG_ENCODING_TO_CHAR", []int{1}, []int{0, 2}},
		{"PG_GET_EXPR", []int{2}, []int{0, 1, 3}},
		{"PG_GET_INDEXDEF", []int{1, 3}, []int{0, 2, 4}},
		{"PG_GET_USERBYID", []int{1}, []int{0, 2}},
		{"PG_POSTMASTER_START_TIME", []int{0}, []int{1}},
		{"PG_RELATION_SIZE", []int{1, 2}, []int{0, 3}},
		{"PG_TABLE_IS_VISIBLE", []int{1}, []int{0, 2}},
		{"SET_CONFIG", []int{3}, []int{0, 2, 4}},
		{"CURRENT_DATABASE", []int{0}, []int{1}},
		{"CURRENT_CATALOG", []int{0}, []int{1}},
	}
	for _, tc := range cases {
		f, ok := reg.Lookup(tc.name)
		require.True(t, ok, tc.name)
		for _, n := range tc.ok {
			require.NoError(t, f.CheckArgCount(ctx, n), "%s/%d", tc.name, n)
		}
		for _, n := range tc.bad {
			err := f.CheckArgCount(ctx, n)
			require.True(t, perr.IsPerrCode(err, perr.ErrInvalidParameterCount), "%s/%d", tc.name, n)
			require.Contains(t, err.Error(), tc.name)
		}
	}
}

func TestCheckArgCount_indexdefDescription(t *testing.T) {
	reg := NewRegistry()
	f, _ := reg.Lookup("PG_GET_INDEXDEF")

	err := f.CheckArgCount(context.Background(), 2)
	require.EqualError(t, err, "invalid parameter count for PG_GET_INDEXDEF, expected 1, 3")
}

func TestNewCallValidatesArity(t *testing.T) {
	env := newTestEnv(t)
	f, _ := env.reg.Lookup("PG_GET_INDEXDEF")

	_, err := NewCall(context.Background(), f, []expr.Expression{constInt32(30), constInt32(0)})
	require.True(t, perr.IsPerrCode(err, perr.ErrInvalidParameterCount))

	c, err := NewCall(context.Background(), f, []expr.Expression{constInt32(30)})
	require.NoError(t, err)
	require.Same(t, f, c.Info())
}

func TestConcurrentLookupAndEval(t *testing.T) {
	env := newTestEnv(t)
	ses := env.session(env.nadia)

	pool, err := ants.NewPool(8)
	require.NoError(t, err)
	defer pool.Release()

	var wg sync.WaitGroup
	var failures int64
	for i := 0; i < 200; i++ {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			f, ok := env.reg.Lookup("version")
			if !ok {
				atomic.AddInt64(&failures, 1)
				return
			}
			c, err := NewCall(context.Background(), f, nil)
			if err != nil {
				atomic.AddInt64(&failures, 1)
				return
			}
			v, err := c.Eval(ses)
			if err != nil || !strings.HasPrefix(v.Str(), "PostgreSQL ") {
				atomic.AddInt64(&failures, 1)
			}
		})
		require.NoError(t, err)
	}
	wg.Wait()
	require.Zero(t, atomic.LoadInt64(&failures))
}
