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

// Package io provides hash engines that read their input from the
// filesystem.
package io

import (
	"fmt"
	"io"
	"os"

	"github.com/signedocs/doc-signing/pkg/hashing/digests"
	hashengines "github.com/signedocs/doc-signing/pkg/hashing/engines"
)

// DefaultChunkSize is the read size used when callers do not specify one.
// Peak memory during hashing is bounded by this value regardless of file
// size.
const DefaultChunkSize = 8192

// FileHasher hashes an entire file by streaming it into an inner
// StreamingHashEngine. The file is read exactly once and never loaded
// into memory as a whole (unless chunkSize == 0, which reads it at once).
type FileHasher struct {
	filePath      string
	contentHasher hashengines.StreamingHashEngine
	chunkSize     int
}

// NewFileHasher constructs a FileHasher.
//
//   - filePath: path to the file to hash
//   - contentHasher: the StreamingHashEngine used to hash file contents
//   - chunkSize: number of bytes to read per chunk; 0 means "read all at once"
func NewFileHasher(filePath string, contentHasher hashengines.StreamingHashEngine, chunkSize int) (*FileHasher, error) {
	if chunkSize < 0 {
		return nil, fmt.Errorf("chunk size must be non-negative, got %d", chunkSize)
	}
	if filePath == "" {
		return nil, fmt.Errorf("file path must be non-empty")
	}
	if contentHasher == nil {
		return nil, fmt.Errorf("content hasher must not be nil")
	}

	return &FileHasher{
		filePath:      filePath,
		contentHasher: contentHasher,
		chunkSize:     chunkSize,
	}, nil
}

// SetFile changes the file that will be hashed on the next Compute call.
func (h *FileHasher) SetFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("file path must be non-empty")
	}
	h.filePath = filePath
	return nil
}

// DigestName is delegated to the inner content hasher.
func (h *FileHasher) DigestName() string {
	return h.contentHasher.DigestName()
}

// DigestSize is delegated to the inner content hasher.
func (h *FileHasher) DigestSize() int {
	return h.contentHasher.DigestSize()
}

// Compute streams the file through the inner engine and returns the digest.
// The inner state is reset before each computation, so a FileHasher can be
// reused across files.
func (h *FileHasher) Compute() (digests.Digest, error) {
	h.contentHasher.Reset(nil)

	f, err := os.Open(h.filePath)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("open file %q: %w", h.filePath, err)
	}
	defer f.Close()

	if h.chunkSize == 0 {
		data, err := io.ReadAll(f)
		if err != nil {
			return digests.Digest{}, fmt.Errorf("read file %q: %w", h.filePath, err)
		}
		h.contentHasher.Update(data)
	} else {
		buf := make([]byte, h.chunkSize)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				h.contentHasher.Update(buf[:n])
			}
			if err != nil {
				if err == io.EOF {
					break
				}
				return digests.Digest{}, fmt.Errorf("read file %q: %w", h.filePath, err)
			}
		}
	}

	d, err := h.contentHasher.Compute()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("compute digest: %w", err)
	}
	return d, nil
}

// HashFile is a convenience that hashes a single file with the named
// algorithm and DefaultChunkSize. The algorithm must be registered with the
// engines registry.
func HashFile(filePath, algorithm string) (digests.Digest, error) {
	engine, err := hashengines.Create(algorithm)
	if err != nil {
		return digests.Digest{}, err
	}

	hasher, err := NewFileHasher(filePath, engine, DefaultChunkSize)
	if err != nil {
		return digests.Digest{}, err
	}
	return hasher.Compute()
}
