// Copyright 2025 The SignedDocs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package verify

import (
	"errors"
	"fmt"
)

// ErrorType categorizes a verification failure.
type ErrorType int

const (
	// ErrTypeUnknown indicates an unclassified error.
	ErrTypeUnknown ErrorType = iota

	// ErrTypeFileNotFound indicates the document or its sidecar is missing.
	ErrTypeFileNotFound

	// ErrTypeSidecarCorrupt indicates the sidecar exists but cannot be
	// parsed, or is missing required fields.
	ErrTypeSidecarCorrupt

	// ErrTypeTampered indicates the document content changed after signing
	// (hash mismatch).
	ErrTypeTampered

	// ErrTypeSignatureInvalid indicates the cryptographic signature check
	// failed: the content is intact but the signature does not verify.
	ErrTypeSignatureInvalid

	// ErrTypeKeyMismatch indicates no usable public key matches the
	// fingerprint recorded in the signature.
	ErrTypeKeyMismatch

	// ErrTypeKeyUnavailable indicates a public key could not be loaded or
	// parsed at all.
	ErrTypeKeyUnavailable

	// ErrTypeIO indicates a file read error.
	ErrTypeIO
)

// String returns a human-readable name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeFileNotFound:
		return "FileNotFound"
	case ErrTypeSidecarCorrupt:
		return "SidecarCorrupt"
	case ErrTypeTampered:
		return "Tampered"
	case ErrTypeSignatureInvalid:
		return "InvalidSignature"
	case ErrTypeKeyMismatch:
		return "KeyMismatch"
	case ErrTypeKeyUnavailable:
		return "KeyUnavailable"
	case ErrTypeIO:
		return "IOError"
	default:
		return "UnknownError"
	}
}

// VerificationError is a structured error for verification failures. It
// carries the failure category, the path involved when one applies, a
// human-readable message, and the wrapped cause.
type VerificationError struct {
	Type    ErrorType
	Path    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *VerificationError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("%s: %s (path: %s): %v", e.Type, e.Message, e.Path, e.Cause)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path: %s)", e.Type, e.Message, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for error chain unwrapping.
func (e *VerificationError) Unwrap() error {
	return e.Cause
}

// NewVerificationError creates a new verification error.
func NewVerificationError(errType ErrorType, message string, cause error) *VerificationError {
	return &VerificationError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewVerificationErrorWithPath creates a new verification error with a path.
func NewVerificationErrorWithPath(errType ErrorType, path, message string, cause error) *VerificationError {
	return &VerificationError{
		Type:    errType,
		Path:    path,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is a VerificationError of a specific type.
func IsType(err error, errType ErrorType) bool {
	var verifyErr *VerificationError
	if errors.As(err, &verifyErr) {
		return verifyErr.Type == errType
	}
	return false
}
