//
// Copyright 2025 The SignedDocs Authors.
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

package memory

import (
	"testing"

	hashengines "github.com/signedocs/doc-signing/pkg/hashing/engines"
)

// Test that SHA256 implements StreamingHashEngine at compile time.
func TestSHA256_ImplementsStreamingHashEngine(t *testing.T) {
	var _ hashengines.StreamingHashEngine = (*SHA256)(nil)
}

func TestSHA256_UpdateThenCompute(t *testing.T) {
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

	h := NewSHA256(nil)
	h.Update([]byte("abc"))

	d, err := h.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if got := d.Hex(); got != want {
		t.Errorf("Compute() = %q, want %q", got, want)
	}
}

func TestSHA256_InitialDataConstructor(t *testing.T) {
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

	h := NewSHA256([]byte("abc"))

	d, err := h.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if got := d.Hex(); got != want {
		t.Errorf("Compute() = %q, want %q", got, want)
	}
}

func TestSHA256_EmptyInput(t *testing.T) {
	const want = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	h := NewSHA256(nil)

	d, err := h.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if got := d.Hex(); got != want {
		t.Errorf("Compute() = %q, want %q", got, want)
	}
}

func TestSHA256_ResetAndRecompute(t *testing.T) {
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

	h := NewSHA256(nil)

	h.Update([]byte("junk"))
	h.Reset(nil)
	h.Update([]byte("abc"))

	d, err := h.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if got := d.Hex(); got != want {
		t.Errorf("Compute() after Reset() = %q, want %q", got, want)
	}
}

func TestSHA256_NameAndSize(t *testing.T) {
	h := NewSHA256(nil)

	if got := h.DigestName(); got != SHA256AlgorithmName {
		t.Errorf("DigestName() = %q, want %q", got, SHA256AlgorithmName)
	}
	if got := h.DigestSize(); got != 32 {
		t.Errorf("DigestSize() = %d, want 32", got)
	}
}
