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

package frontend

import (
	"context"
	"time"

	"github.com/petreldb/petrel/pkg/catalog"
	"github.com/petreldb/petrel/pkg/common/perr"
	"github.com/petreldb/petrel/pkg/config"
)

var nowFunc = time.Now

// Session is one client (or system) session.  Statement binding and
// evaluation receive the session as their context: it carries the identity
// of the caller, the catalog snapshot and the engine configuration.
type Session struct {
	// Ctx is the context statement execution runs under.
	Ctx context.Context

	cat      *catalog.Catalog
	vars     *config.Variables
	user     *catalog.User
	database string
	startAt  time.Time

	// system points at the engine's system session; nil for the system
	// session itself.
	system *Session
}

// NewSession opens a session for the given user.  system is the engine's
// system session, or nil when opening the system session itself.
func NewSession(ctx context.Context, cat *catalog.Catalog, vars *config.Variables, user *catalog.User, database string, system *Session) *Session {
	return &Session{
		Ctx:      ctx,
		cat:      cat,
		vars:     vars,
		user:     user,
		database: database,
		startAt:  nowFunc(),
		system:   system,
	}
}

func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

func (s *Session) Vars() *config.Variables {
	return s.vars
}

func (s *Session) User() *catalog.User {
	return s.user
}

func (s *Session) Database() string {
	return s.database
}

// StartTime returns the wall-clock time the session was opened at.
func (s *Session) StartTime() time.Time {
	return s.startAt
}

// System returns the engine's system session.
func (s *Session) System() *Session {
	if s.system == nil {
		return s
	}
	return s.system
}

// ResolveTableName resolves a textual table name within the session's
// database.  A double-quoted name matches exactly; an unquoted name matches
// case-insensitively.
func (s *Session) ResolveTableName(name string) (*catalog.Table, error) {
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		if t, ok := s.cat.TableByName(name[1 : len(name)-1]); ok {
			return t, nil
		}
		return nil, perr.NewNoSuchTable(s.Ctx, s.database, name)
	}
	if t, ok := s.cat.TableByName(name); ok {
		return t, nil
	}
	if t, ok := s.cat.TableByFoldedName(name); ok {
		return t, nil
	}
	return nil, perr.NewNoSuchTable(s.Ctx, s.database, name)
}
