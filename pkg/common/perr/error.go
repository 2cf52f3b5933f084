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

package perr

import (
	"context"
	"fmt"
)

const defaultSqlState = "XX000"

// Error codes.  Codes are stable identifiers and must never be renumbered;
// new codes are appended to the end of their group.
const (
	// 0 - 99 is OK.
	Ok uint16 = 0

	// Group 1: internal errors
	ErrStart    uint16 = 20100
	ErrInternal uint16 = 20101
	ErrNYI      uint16 = 20102

	// Group 2: functions
	ErrInvalidParameterCount uint16 = 20200

	// Group 3: invalid input
	ErrBadConfig    uint16 = 20300
	ErrInvalidInput uint16 = 20301
	ErrParseError   uint16 = 20302

	// Group 4: unexpected state
	ErrNoSuchTable        uint16 = 20400
	ErrTableAlreadyExists uint16 = 20401

	// ErrEnd, the max value of error codes
	ErrEnd uint16 = 65535
)

type errorMsgItem struct {
	sqlState         string
	errorMsgOrFormat string
}

var errorMsgRefer = map[uint16]errorMsgItem{
	ErrStart:    {defaultSqlState, "internal error: error code start"},
	ErrInternal: {defaultSqlState, "internal error: %s"},
	ErrNYI:      {defaultSqlState, "%s is not yet implemented"},

	ErrInvalidParameterCount: {"42601", "invalid parameter count for %s, expected %s"},

	ErrBadConfig:    {"F0000", "invalid configuration: %s"},
	ErrInvalidInput: {"22023", "invalid input: %s"},
	ErrParseError:   {"42601", "SQL parser error: %s"},

	ErrNoSuchTable:        {"42P01", "no such table %s.%s"},
	ErrTableAlreadyExists: {"42P07", "table %s already exists"},

	ErrEnd: {defaultSqlState, "internal error: end of error codes"},
}

func newError(_ context.Context, code uint16, args ...any) *Error {
	item, has := errorMsgRefer[code]
	if !has {
		panic(NewInternalErrorNoCtx("unknown error code: %d", code))
	}
	var err *Error
	if len(args) == 0 {
		err = &Error{
			code:     code,
			message:  item.errorMsgOrFormat,
			sqlState: item.sqlState,
		}
	} else {
		err = &Error{
			code:     code,
			message:  fmt.Sprintf(item.errorMsgOrFormat, args...),
			sqlState: item.sqlState,
		}
	}
	return err
}

// Error is the engine error type.  It carries a stable error code and a
// SQLSTATE so the frontend can surface it over the wire protocol unchanged.
type Error struct {
	code     uint16
	message  string
	sqlState string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

func (e *Error) SqlState() string {
	return e.sqlState
}

// IsPerrCode reports whether e is an engine error with the given code.
func IsPerrCode(e error, rc uint16) bool {
	if e == nil {
		return rc == Ok
	}
	pe, ok := e.(*Error)
	if !ok {
		return false
	}
	return pe.code == rc
}

// ConvertGoError converts a go error into an engine error.
// Note here we must return error, because nil error
// is the same as nil *Error -- Go strangeness.
func ConvertGoError(ctx context.Context, err error) error {
	if err == nil {
		return err
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return NewInternalError(ctx, "convert go error to engine error %v", err)
}

func NewInternalError(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInternal, xmsg)
}

func NewInternalErrorNoCtx(msg string, args ...any) *Error {
	return NewInternalError(context.Background(), msg, args...)
}

func NewNYI(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrNYI, xmsg)
}

// NewInvalidParameterCount reports a function call with an argument count
// outside the accepted set.  expected describes the accepted counts, for
// example "2", "1..2" or "1, 3".
func NewInvalidParameterCount(ctx context.Context, name string, expected string) *Error {
	return newError(ctx, ErrInvalidParameterCount, name, expected)
}

func NewBadConfig(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrBadConfig, xmsg)
}

func NewInvalidInput(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInvalidInput, xmsg)
}

func NewInvalidInputNoCtx(msg string, args ...any) *Error {
	return NewInvalidInput(context.Background(), msg, args...)
}

func NewParseError(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrParseError, xmsg)
}

func NewNoSuchTable(ctx context.Context, db, tbl string) *Error {
	return newError(ctx, ErrNoSuchTable, db, tbl)
}

func NewTableAlreadyExists(ctx context.Context, tbl string) *Error {
	return newError(ctx, ErrTableAlreadyExists, tbl)
}
