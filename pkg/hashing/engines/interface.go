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

// Package hashengines defines the interfaces for computing digests and a
// registry mapping algorithm names to engine factories. Document hashing in
// this module is pinned to SHA-256, but the engine layer is generic so other
// algorithms (e.g. BLAKE2b) stay available for auxiliary uses.
package hashengines

import (
	"github.com/signedocs/doc-signing/pkg/hashing/digests"
)

// HashEngine is the core interface for computing cryptographic hashes.
type HashEngine interface {
	// Compute finalizes the hash computation and returns the resulting digest.
	Compute() (digests.Digest, error)

	// DigestName returns the canonical name of the hash algorithm. The name
	// must include any parameter that influences the output, so it can be
	// used to reconstruct a compatible engine during verification.
	DigestName() string

	// DigestSize returns the size in bytes of digests produced by this engine.
	DigestSize() int
}

// Streaming is the interface for incrementally feeding data to a hash engine.
type Streaming interface {
	// Update appends additional bytes to the data being hashed.
	Update(data []byte)

	// Reset clears the hash state and optionally seeds it with new data.
	Reset(data []byte)
}

// StreamingHashEngine combines HashEngine and Streaming for incremental
// hashing. Kept as a composition of the two smaller interfaces so one-shot
// implementations remain possible.
type StreamingHashEngine interface {
	HashEngine
	Streaming
}
