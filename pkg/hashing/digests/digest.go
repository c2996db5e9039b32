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

// Package digests provides the value type for cryptographic hash digests.
//
// A Digest pairs the algorithm name with the computed hash value. Fields are
// unexported and defensively copied so a Digest is effectively immutable.
package digests

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Digest represents a computed cryptographic hash digest.
type Digest struct {
	algorithm string
	value     []byte
}

// NewDigest creates a new Digest with the given algorithm name and raw hash
// value. The value slice is copied so later mutation of the caller's slice
// cannot change the Digest.
func NewDigest(algorithm string, value []byte) Digest {
	v := make([]byte, len(value))
	copy(v, value)
	return Digest{algorithm: algorithm, value: v}
}

// Algorithm returns the name of the hash algorithm that produced this digest.
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	v := make([]byte, len(d.value))
	copy(v, d.value)
	return v
}

// Hex returns the digest value as a lowercase hex string.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

// Size returns the length of the digest value in bytes.
func (d Digest) Size() int {
	return len(d.value)
}

// Equal reports whether two digests have the same algorithm and value.
// The value comparison is constant-time.
func (d Digest) Equal(other Digest) bool {
	if d.algorithm != other.algorithm {
		return false
	}
	if len(d.value) != len(other.value) {
		return false
	}
	return subtle.ConstantTimeCompare(d.value, other.value) == 1
}

// String returns "<algorithm>:<hex>" for logging and error messages.
func (d Digest) String() string {
	return fmt.Sprintf("%s:%s", d.algorithm, d.Hex())
}
