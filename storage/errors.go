// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageFailed matches every *StorageFailure.
	ErrStorageFailed = errors.New("storage failed")

	// ErrFilenameMismatch indicates a record that belongs to another file than its batch.
	ErrFilenameMismatch = errors.New("record filename does not match batch")

	// ErrDimensionMismatch indicates vectors of different lengths in one batch.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrTruncatedData indicates that data was truncated during reading.
	ErrTruncatedData = errors.New("truncated data")
)

// Operations reported in StorageFailure.Op.
const (
	OpValidate = "validate"
	OpConnect  = "connect"
	OpBegin    = "begin"
	OpInsert   = "insert"
	OpCommit   = "commit"
	OpRead     = "read"
	OpPanic    = "panic"
)

// StorageFailure describes a batch that could not be committed.
type StorageFailure struct {
	Op  string
	Err error
}

// Fail wraps err as a *StorageFailure for op.
func Fail(op string, err error) *StorageFailure {
	return &StorageFailure{Op: op, Err: err}
}

func (f *StorageFailure) Error() string {
	return fmt.Sprintf("storage %s: %v", f.Op, f.Err)
}

func (f *StorageFailure) Unwrap() error {
	return f.Err
}

// Is reports whether target is ErrStorageFailed.
func (f *StorageFailure) Is(target error) bool {
	return target == ErrStorageFailed
}
