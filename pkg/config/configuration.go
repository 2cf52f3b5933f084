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

package config

import (
	"context"

	"github.com/BurntSushi/toml"

	"github.com/petreldb/petrel/pkg/common/perr"
	"github.com/petreldb/petrel/pkg/logutil"
)

const (
	// DefaultPgVersion is the PostgreSQL version tag reported to clients
	// connecting in compatibility mode.
	DefaultPgVersion = "8.2.23"

	// EngineVersion is the version of this build.
	EngineVersion = "0.3.0"
)

// Variables holds the engine configuration.  Values are filled with defaults
// by LoadInitialValues and may then be overridden from a toml file.
type Variables struct {
	// PgVersion is the emulated PostgreSQL version tag.
	PgVersion string `toml:"pgVersion"`

	// EngineVersion is the engine's own version identifier.
	EngineVersion string `toml:"engineVersion"`

	// DefaultDatabase is the database name sessions start in.
	DefaultDatabase string `toml:"defaultDatabase"`

	Log logutil.LogConfig `toml:"log"`
}

// LoadInitialValues fills v with built-in defaults.
func (v *Variables) LoadInitialValues() error {
	v.PgVersion = DefaultPgVersion
	v.EngineVersion = EngineVersion
	v.DefaultDatabase = "petrel"
	v.Log = logutil.LogConfig{
		Level:      "info",
		Format:     "console",
		MaxSize:    512,
		MaxDays:    30,
		MaxBackups: 8,
	}
	return nil
}

// LoadVarsConfigFromFile overrides v with the values present in the given
// toml file.
func LoadVarsConfigFromFile(path string, v *Variables) error {
	if _, err := toml.DecodeFile(path, v); err != nil {
		return perr.NewBadConfig(context.Background(), "%s: %v", path, err)
	}
	return nil
}
