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

package value

import (
	"math"
	"strconv"
	"time"

	"github.com/petreldb/petrel/pkg/common/perr"
	"github.com/petreldb/petrel/pkg/container/types"
)

// Value is a scalar typed value.  The zero Value is the NULL value.
type Value struct {
	typ types.T
	b   bool
	i   int64
	s   string
	ts  time.Time
}

// Null is the NULL value.  NULL carries no type of its own and matches any
// required type.
var Null = Value{typ: types.T_any}

func NewBool(v bool) Value {
	return Value{typ: types.T_bool, b: v}
}

func NewInt32(v int32) Value {
	return Value{typ: types.T_int32, i: int64(v)}
}

func NewInt64(v int64) Value {
	return Value{typ: types.T_int64, i: v}
}

func NewVarchar(v string) Value {
	return Value{typ: types.T_varchar, s: v}
}

func NewTimestampTZ(v time.Time) Value {
	return Value{typ: types.T_timestamptz, ts: v}
}

func (v Value) Typ() types.T {
	return v.typ
}

func (v Value) IsNull() bool {
	return v.typ == types.T_any
}

// Bool returns the boolean payload; only meaningful for T_bool values.
func (v Value) Bool() bool {
	return v.b
}

// Int32 converts v to a 32-bit integer.
func (v Value) Int32() (int32, error) {
	switch v.typ {
	case types.T_int32:
		return int32(v.i), nil
	case types.T_int64:
		if v.i < math.MinInt32 || v.i > math.MaxInt32 {
			return 0, perr.NewInvalidInputNoCtx("value %d out of range for INT32", v.i)
		}
		return int32(v.i), nil
	case types.T_varchar:
		n, err := strconv.ParseInt(v.s, 10, 32)
		if err != nil {
			return 0, perr.NewInvalidInputNoCtx("cannot convert %q to INT32", v.s)
		}
		return int32(n), nil
	}
	return 0, perr.NewInvalidInputNoCtx("cannot convert %s to INT32", v.typ)
}

// Int64 converts v to a 64-bit integer.
func (v Value) Int64() (int64, error) {
	switch v.typ {
	case types.T_int32, types.T_int64:
		return v.i, nil
	case types.T_varchar:
		n, err := strconv.ParseInt(v.s, 10, 64)
		if err != nil {
			return 0, perr.NewInvalidInputNoCtx("cannot convert %q to INT64", v.s)
		}
		return n, nil
	}
	return 0, perr.NewInvalidInputNoCtx("cannot convert %s to INT64", v.typ)
}

// Str returns the string payload; only meaningful for T_varchar values.
func (v Value) Str() string {
	return v.s
}

// Timestamp returns the time payload; only meaningful for T_timestamptz values.
func (v Value) Timestamp() time.Time {
	return v.ts
}

// ToText converts any value to its text form, the way a cast to VARCHAR does.
// NULL converts to the empty string; callers that must keep NULL distinct
// check IsNull first.
func (v Value) ToText() string {
	switch v.typ {
	case types.T_bool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case types.T_int32, types.T_int64:
		return strconv.FormatInt(v.i, 10)
	case types.T_varchar:
		return v.s
	case types.T_timestamptz:
		return v.ts.Format("2006-01-02 15:04:05.999999-07:00")
	}
	return ""
}

func (v Value) String() string {
	if v.IsNull() {
		return "NULL"
	}
	return v.ToText()
}
