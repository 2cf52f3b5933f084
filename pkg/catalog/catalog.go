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

// Package catalog holds the engine's in-memory metadata: tables and views,
// indexes, and users.  The catalog is populated during bootstrap and DDL
// execution; query evaluation only reads it.
package catalog

import (
	"context"
	"strings"

	"github.com/google/btree"

	"github.com/petreldb/petrel/pkg/common/perr"
)

// Table is a table or view registered in the catalog.
type Table struct {
	id       uint32
	name     string
	hidden   bool
	diskSize int64
}

func (t *Table) ID() uint32 {
	return t.id
}

func (t *Table) Name() string {
	return t.name
}

// IsHidden reports whether the table is an engine-internal object that must
// not be surfaced to clients.
func (t *Table) IsHidden() bool {
	return t.hidden
}

// DiskSpaceUsed returns the table's on-disk size in bytes.
func (t *Table) DiskSpaceUsed() int64 {
	return t.diskSize
}

// SetDiskSpaceUsed records the table's on-disk size; called by the storage
// layer after flushes.
func (t *Table) SetDiskSpaceUsed(n int64) {
	t.diskSize = n
}

// Index is a secondary index registered in the catalog.
type Index struct {
	id        uint32
	name      string
	table     *Table
	columns   []string
	createSQL string
}

func (i *Index) ID() uint32 {
	return i.id
}

func (i *Index) Name() string {
	return i.name
}

func (i *Index) Table() *Table {
	return i.table
}

// Columns returns the ordered names of the indexed columns.
func (i *Index) Columns() []string {
	return i.columns
}

// CreateSQL returns the canonical definition text of the index.
func (i *Index) CreateSQL() string {
	return i.createSQL
}

// User is a database user.
type User struct {
	id    uint32
	name  string
	admin bool
}

func (u *User) ID() uint32 {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) IsAdmin() bool {
	return u.admin
}

type tableItem struct {
	t *Table
}

func (a tableItem) Less(b btree.Item) bool {
	return a.t.id < b.(tableItem).t.id
}

// Catalog is the engine's metadata root.  It is not synchronized: writes
// happen during bootstrap and DDL under the engine's schema lock, reads
// during evaluation see an already-built snapshot.
type Catalog struct {
	tables   *btree.BTree
	byName   map[string]*Table
	byFolded map[string]*Table
	indexes  []*Index
	users    []*User
}

func New() *Catalog {
	return &Catalog{
		tables:   btree.New(2),
		byName:   make(map[string]*Table),
		byFolded: make(map[string]*Table),
	}
}

// CreateTable registers a table or view.
func (c *Catalog) CreateTable(ctx context.Context, id uint32, name string, hidden bool) (*Table, error) {
	if _, ok := c.byName[name]; ok {
		return nil, perr.NewTableAlreadyExists(ctx, name)
	}
	t := &Table{id: id, name: name, hidden: hidden}
	c.tables.ReplaceOrInsert(tableItem{t: t})
	c.byName[name] = t
	c.byFolded[strings.ToLower(name)] = t
	return t, nil
}

// CreateIndex registers a secondary index on an existing table.
func (c *Catalog) CreateIndex(id uint32, name string, t *Table, columns ...string) *Index {
	idx := &Index{
		id:        id,
		name:      name,
		table:     t,
		columns:   columns,
		createSQL: "CREATE INDEX " + name + " ON " + t.name + " (" + strings.Join(columns, ", ") + ")",
	}
	c.indexes = append(c.indexes, idx)
	return idx
}

// CreateUser registers a user.
func (c *Catalog) CreateUser(id uint32, name string, admin bool) *User {
	u := &User{id: id, name: name, admin: admin}
	c.users = append(c.users, u)
	return u
}

// Tables enumerates all tables and views in id order.
func (c *Catalog) Tables() []*Table {
	out := make([]*Table, 0, c.tables.Len())
	c.tables.Ascend(func(it btree.Item) bool {
		out = append(out, it.(tableItem).t)
		return true
	})
	return out
}

// Indexes enumerates all indexes, in creation order.
func (c *Catalog) Indexes() []*Index {
	return c.indexes
}

// Users enumerates all users, in creation order.
func (c *Catalog) Users() []*User {
	return c.users
}

// TableByName returns the table with exactly the given name.
func (c *Catalog) TableByName(name string) (*Table, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// TableByFoldedName returns the table matching the given name
// case-insensitively.
func (c *Catalog) TableByFoldedName(name string) (*Table, bool) {
	t, ok := c.byFolded[strings.ToLower(name)]
	return t, ok
}
