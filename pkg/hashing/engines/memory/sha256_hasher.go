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

package memory

import (
	"crypto/sha256"
	"hash"

	hashengines "github.com/signedocs/doc-signing/pkg/hashing/engines"
)

// SHA256AlgorithmName is the registry name for the SHA-256 engine. This is
// also the algorithm recorded for document hashes in signature metadata.
const SHA256AlgorithmName = "sha256"

func init() {
	hashengines.MustRegister(SHA256AlgorithmName, func() (hashengines.StreamingHashEngine, error) {
		return NewSHA256(nil), nil
	})
}

// SHA256 is a streaming engine wrapping crypto/sha256.
type SHA256 = GenericHashEngine

// NewSHA256 constructs a SHA-256 engine. If initialData is non-empty, it is
// hashed immediately.
func NewSHA256(initialData []byte) *SHA256 {
	// The sha256 factory cannot fail.
	e, _ := NewGenericHashEngine(
		SHA256AlgorithmName,
		sha256.Size,
		func() (hash.Hash, error) { return sha256.New(), nil },
		initialData,
	)
	return e
}
