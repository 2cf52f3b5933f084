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

// Package engine assembles the catalog, the configuration and the
// compatibility function registry into a running database instance.
package engine

import (
	"context"

	"github.com/petreldb/petrel/pkg/catalog"
	"github.com/petreldb/petrel/pkg/config"
	"github.com/petreldb/petrel/pkg/frontend"
	"github.com/petreldb/petrel/pkg/logutil"
	"github.com/petreldb/petrel/pkg/sql/function"
)

// systemUserID is the id of the built-in administrator.
const systemUserID = 0

// Engine owns the instance-wide state.  All client sessions created from one
// engine share its catalog and its function registry; the registry is built
// once here and only ever read afterwards.
type Engine struct {
	vars *config.Variables
	cat  *catalog.Catalog
	reg  *function.Registry
	sys  *frontend.Session
}

// New builds an engine from loaded configuration.  The system session it
// opens records the instance start time reported by pg_postmaster_start_time.
func New(ctx context.Context, vars *config.Variables) *Engine {
	logutil.SetupPetrelLogger(&vars.Log)

	cat := catalog.New()
	sysUser := cat.CreateUser(systemUserID, "system", true)
	sys := frontend.NewSession(ctx, cat, vars, sysUser, vars.DefaultDatabase, nil)

	e := &Engine{
		vars: vars,
		cat:  cat,
		reg:  function.NewRegistry(),
		sys:  sys,
	}
	logutil.Infof("engine started, version %s, pg protocol version %s",
		vars.EngineVersion, vars.PgVersion)
	return e
}

func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

func (e *Engine) Registry() *function.Registry {
	return e.reg
}

func (e *Engine) Vars() *config.Variables {
	return e.vars
}

// SystemSession is the session the engine itself runs under.
func (e *Engine) SystemSession() *frontend.Session {
	return e.sys
}

// NewSession opens a client session for the given user in the default
// database.
func (e *Engine) NewSession(ctx context.Context, user *catalog.User) *frontend.Session {
	return frontend.NewSession(ctx, e.cat, e.vars, user, e.vars.DefaultDatabase, e.sys)
}
