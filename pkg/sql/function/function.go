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

// Package function implements the PostgreSQL compatibility functions: the
// registry mapping function names to descriptors, the call-site expression
// node, and the per-function evaluation logic.  Client tools speaking the
// PostgreSQL dialect call these to introspect the catalog.
package function

import (
	"context"
	"strconv"
	"strings"

	"github.com/petreldb/petrel/pkg/common/perr"
	"github.com/petreldb/petrel/pkg/container/types"
	"github.com/petreldb/petrel/pkg/logutil"
)

// Function codes.  The code is the dispatch key of the evaluator and is
// never exposed outside this package.
const (
	pgCurrtid2 int32 = iota + 1
	pgHasDatabasePrivilege
	pgHasTablePrivilege
	pgVersion
	pgObjDescription
	pgEncodingToChar
	pgGetExpr
	pgGetIndexdef
	pgGetUserbyid
	pgPostmasterStartTime
	pgRelationSize
	pgTableIsVisible
	pgSetConfig
	pgCurrentDatabase
)

// argsVariable marks a function whose argument count is validated by a
// per-function rule instead of an exact count.
const argsVariable = -1

// FunctionInfo is the static descriptor of one compatibility function.
// Descriptors are built once when the registry is constructed and shared,
// read-only, by every call site.
type FunctionInfo struct {
	name     string
	code     int32
	argCount int
	retType  types.T

	// deterministic functions with all-constant arguments fold at
	// optimize time
	deterministic bool

	// nullPropagating functions return NULL when any argument is NULL,
	// without invoking function logic
	nullPropagating bool
}

func (f *FunctionInfo) Name() string {
	return f.name
}

func (f *FunctionInfo) ResultType() types.T {
	return f.retType
}

func (f *FunctionInfo) IsDeterministic() bool {
	return f.deterministic
}

// CheckArgCount validates an argument count against the descriptor's arity
// rule.  Fixed-arity functions accept exactly their declared count; the
// remaining functions use per-function rules.  PG_GET_INDEXDEF accepts
// exactly 1 or exactly 3 arguments, never 2.
func (f *FunctionInfo) CheckArgCount(ctx context.Context, n int) error {
	if f.argCount != argsVariable {
		if n != f.argCount {
			return perr.NewInvalidParameterCount(ctx, f.name, strconv.Itoa(f.argCount))
		}
		return nil
	}
	var min, max int
	switch f.code {
	case pgHasDatabasePrivilege, pgHasTablePrivilege:
		min, max = 2, 3
	case pgObjDescription, pgRelationSize:
		min, max = 1, 2
	case pgGetIndexdef:
		if n != 1 && n != 3 {
			return perr.NewInvalidParameterCount(ctx, f.name, "1, 3")
		}
		return nil
	default:
		panic(perr.NewInternalErrorNoCtx("missing argument count rule for function code %d", f.code))
	}
	if n < min || n > max {
		return perr.NewInvalidParameterCount(ctx, f.name, strconv.Itoa(min)+".."+strconv.Itoa(max))
	}
	return nil
}

// Registry maps compatibility function names to descriptors.  It is built
// once at engine startup and never mutated afterwards, so concurrent lookups
// from simultaneously executing statements need no synchronization.
type Registry struct {
	funcs map[string]*FunctionInfo
}

// NewRegistry builds the compatibility function registry.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]*FunctionInfo)}

	r.register(&FunctionInfo{"CURRTID2", pgCurrtid2, 2, types.T_int32, false, true})
	r.register(&FunctionInfo{"HAS_DATABASE_PRIVILEGE", pgHasDatabasePrivilege, argsVariable, types.T_bool, false, true})
	r.register(&FunctionInfo{"HAS_TABLE_PRIVILEGE", pgHasTablePrivilege, argsVariable, types.T_bool, false, true})
	r.register(&FunctionInfo{"VERSION", pgVersion, 0, types.T_varchar, true, true})
	r.register(&FunctionInfo{"OBJ_DESCRIPTION", pgObjDescription, argsVariable, types.T_varchar, false, true})
	r.register(&FunctionInfo{"PG_ENCODING_TO_CHAR", pgEncodingToChar, 1, types.T_varchar, true, true})
	r.register(&FunctionInfo{"PG_GET_EXPR", pgGetExpr, 2, types.T_varchar, true, true})
	r.register(&FunctionInfo{"PG_GET_INDEXDEF", pgGetIndexdef, argsVariable, types.T_varchar, false, true})
	r.register(&FunctionInfo{"PG_GET_USERBYID", pgGetUserbyid, 1, types.T_varchar, false, true})
	r.register(&FunctionInfo{"PG_POSTMASTER_START_TIME", pgPostmasterStartTime, 0, types.T_timestamptz, false, true})
	r.register(&FunctionInfo{"PG_RELATION_SIZE", pgRelationSize, argsVariable, types.T_int64, false, true})
	r.register(&FunctionInfo{"PG_TABLE_IS_VISIBLE", pgTableIsVisible, 1, types.T_bool, false, true})
	r.register(&FunctionInfo{"SET_CONFIG", pgSetConfig, 3, types.T_varchar, false, true})
	r.register(&FunctionInfo{"CURRENT_DATABASE", pgCurrentDatabase, 0, types.T_varchar, false, true})

	// dialect synonym
	r.registerAlias("CURRENT_DATABASE", "CURRENT_CATALOG")

	logutil.Infof("registered %d pg compatibility functions", len(r.funcs))
	return r
}

func (r *Registry) register(f *FunctionInfo) {
	if _, dup := r.funcs[f.name]; dup {
		panic(perr.NewInternalErrorNoCtx("duplicate pg function name %s", f.name))
	}
	for _, other := range r.funcs {
		if other.code == f.code {
			panic(perr.NewInternalErrorNoCtx("duplicate pg function code %d", f.code))
		}
	}
	r.funcs[f.name] = f
}

// registerAlias registers alias as a synonym of an existing function: same
// code, same behavior, no duplicated logic.
func (r *Registry) registerAlias(source, alias string) {
	src, ok := r.funcs[source]
	if !ok {
		panic(perr.NewInternalErrorNoCtx("alias source %s is not registered", source))
	}
	cp := *src
	cp.name = alias
	if _, dup := r.funcs[alias]; dup {
		panic(perr.NewInternalErrorNoCtx("duplicate pg function name %s", alias))
	}
	r.funcs[alias] = &cp
}

// Lookup returns the descriptor registered under the given name.  Lookup is
// case-insensitive.
func (r *Registry) Lookup(name string) (*FunctionInfo, bool) {
	f, ok := r.funcs[strings.ToUpper(name)]
	return f, ok
}

// Names returns all registered names, aliases included.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		out = append(out, name)
	}
	return out
}
