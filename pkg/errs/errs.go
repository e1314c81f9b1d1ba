// Copyright 2025 Arcade Team
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

// Package errs holds the domain error kinds and the wrapper that attaches
// operation context to them.
package errs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrAuthentication Sid/SKey pair unknown or application locked
	ErrAuthentication = errors.New("Login failed!")
	// ErrMisconfiguration no default environment
	ErrMisconfiguration = errors.New("system misconfiguration")
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate")
	ErrValidation       = errors.New("validation failed")
	ErrIngestion        = errors.New("upload ingestion failed")
	ErrTransaction      = errors.New("transaction failed")
)

// OpError is an error tagged with the operation that produced it.
type OpError struct {
	Op         string
	Originator string
	Time       time.Time
	Args       []any
	Kind       error
	Err        error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Originator != "" {
		b.WriteString(" (by ")
		b.WriteString(e.Originator)
		b.WriteString(")")
	}
	if len(e.Args) > 0 {
		fmt.Fprintf(&b, " %v", e.Args)
	}
	b.WriteString(": ")
	switch {
	case e.Err != nil && e.Kind != nil && e.Err != e.Kind:
		fmt.Fprintf(&b, "%s: %s", e.Kind, e.Err)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	case e.Kind != nil:
		b.WriteString(e.Kind.Error())
	}
	return b.String()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Is matches the kind as well as anything in the wrapped chain.
func (e *OpError) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

// Wrap tags err with op and kind. A nil err yields nil. When kind is nil
// the kind of an inner OpError, if any, is kept; otherwise err is classified
// by Kind.
func Wrap(op, originator string, kind, err error, args ...any) error {
	if err == nil {
		return nil
	}
	if kind == nil {
		kind = Kind(err)
	}
	return &OpError{
		Op:         op,
		Originator: originator,
		Time:       time.Now(),
		Args:       args,
		Kind:       kind,
		Err:        err,
	}
}

// New builds an OpError of the given kind with a plain message.
func New(op string, kind error, format string, args ...any) error {
	return &OpError{
		Op:   op,
		Time: time.Now(),
		Kind: kind,
		Err:  fmt.Errorf(format, args...),
	}
}

// aggregate kinds come first: an IngestionError also unwraps to its row causes
var kinds = []error{
	ErrAuthentication,
	ErrMisconfiguration,
	ErrIngestion,
	ErrTransaction,
	ErrNotFound,
	ErrDuplicate,
	ErrValidation,
}

// Kind returns the domain kind carried by err, or nil when err is unclassified.
func Kind(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// RowFailure is one failed row of an upload.
type RowFailure struct {
	Key string
	Err error
}

// IngestionError aggregates every row that could not be written. Rows written
// before or after a failure are kept.
type IngestionError struct {
	UploadID  uint64
	Succeeded int
	Failures  []RowFailure
}

func (e *IngestionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "upload %d: %d of %d rows failed", e.UploadID, len(e.Failures), len(e.Failures)+e.Succeeded)
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "; %s: %v", f.Key, f.Err)
	}
	return b.String()
}

func (e *IngestionError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures)+1)
	out = append(out, ErrIngestion)
	for _, f := range e.Failures {
		out = append(out, f.Err)
	}
	return out
}
