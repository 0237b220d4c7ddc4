// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised       = ExistsError("already initialised")
	ErrBadRequest               = InvalidError("bad request")
	ErrBufferTooShort           = LengthError("buffer too short")
	ErrCertificateFileExists    = ExistsError("certificate file already exists")
	ErrChainResourceMissing     = NotFoundError("Missing chain resource.")
	ErrDatabaseIsNotSet         = ProcessError("database is not set")
	ErrDecode                   = RecordError("decode failed")
	ErrEmptyKey                 = LengthError("empty key")
	ErrEncode                   = RecordError("encode failed")
	ErrIncompatibleVersion      = ProcessError("incompatible database version")
	ErrInvalidAddress           = InvalidError("invalid address")
	ErrInvalidAmount            = InvalidError("invalid amount")
	ErrInvalidChain             = InvalidError("invalid chain")
	ErrInvalidCount             = InvalidError("invalid count")
	ErrInvalidEnvelope          = InvalidError("invalid transaction envelope")
	ErrInvalidKeyLength         = LengthError("invalid key length")
	ErrInvalidPublicKey         = InvalidError("invalid public key")
	ErrInvalidSeed              = InvalidError("invalid seed")
	ErrInvalidSignature         = InvalidError("invalid signature")
	ErrInvalidStateKeyKind      = RecordError("invalid state key kind")
	ErrInvalidValueFormat       = RecordError("invalid state value format")
	ErrKeyFileExists            = ExistsError("key file already exists")
	ErrMissingParameters        = InvalidError("missing parameters")
	ErrNotInitialised           = NotFoundError("not initialised")
	ErrRateLimiting             = ProcessError("rate limiting")
	ErrTooManyConnections       = ProcessError("too many connections")
	ErrTrailingData             = RecordError("trailing data")
	ErrUnknownAccount           = NotFoundError("unknown account")
	ErrUnsupportedPayload       = InvalidError("unsupported payload")
	ErrWorkerPanic              = ProcessError("worker panic")
	ErrWorkersStopped           = ProcessError("workers stopped")
	ErrWriteSetExecutionMissing = ProcessError("execution produced no output")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
// wrapped errors are unwrapped until a class is found
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrLength(e error) bool   { var x LengthError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
func IsErrRecord(e error) bool   { var x RecordError; return errors.As(e, &x) }

// StorageError - the underlying database failed
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage %s: %s", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// IsErrStorage - true if any error in the chain is a storage failure
func IsErrStorage(e error) bool { var x *StorageError; return errors.As(e, &x) }

// RejectedError - validation refused a transaction with a status code
type RejectedError struct {
	Status string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("Transaction validation failed with status: %s", e.Status)
}

// IsErrRejected - true if validation refused the transaction
func IsErrRejected(e error) bool { var x *RejectedError; return errors.As(e, &x) }

// ExecutionError - the executor did not produce a committable output
type ExecutionError struct {
	Status string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("Transaction execution failed with status: %s", e.Status)
}

// IsErrExecution - true if execution did not produce a committable output
func IsErrExecution(e error) bool { var x *ExecutionError; return errors.As(e, &x) }

// InternalError - every failure crossing the HTTP boundary is
// reported as this single kind
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string { return e.Err.Error() }
func (e *InternalError) Unwrap() error { return e.Err }

// Internal - collapse any error into an internal error, keeping the
// message and the chain for errors.Is
func Internal(err error) error {
	if nil == err {
		return nil
	}
	var x *InternalError
	if errors.As(err, &x) {
		return x
	}
	return &InternalError{Err: err}
}
