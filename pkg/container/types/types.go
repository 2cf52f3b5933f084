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

package types

// T is the semantic type of a scalar value.
type T uint8

const (
	// T_any means a type that can match anything, used for the NULL value.
	T_any T = iota
	T_bool
	T_int32
	T_int64
	T_varchar
	T_timestamptz
)

func (t T) String() string {
	switch t {
	case T_any:
		return "ANY"
	case T_bool:
		return "BOOL"
	case T_int32:
		return "INT32"
	case T_int64:
		return "INT64"
	case T_varchar:
		return "VARCHAR"
	case T_timestamptz:
		return "TIMESTAMPTZ"
	}
	return "unknown type"
}
