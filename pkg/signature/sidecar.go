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

package signature

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/signedocs/doc-signing/pkg/utils"
)

// SidecarExt is the extension of the sidecar artifact written next to a
// signed document.
const SidecarExt = ".sig"

// SidecarPath returns the default sidecar path for a document.
func SidecarPath(documentPath string) string {
	return documentPath + SidecarExt
}

// IsSidecarPath reports whether path names a sidecar artifact rather than a
// document.
func IsSidecarPath(path string) bool {
	return strings.HasSuffix(path, SidecarExt)
}

// DocumentPathFromSidecar returns the document path a sidecar belongs to by
// stripping the sidecar extension. Returns path unchanged if it does not
// carry the extension.
func DocumentPathFromSidecar(path string) string {
	return strings.TrimSuffix(path, SidecarExt)
}

// WritePackage persists a Package as an indented JSON document at path.
// Parent directories are created as needed and the file appears atomically
// (write to temp, then rename), so a concurrent reader never observes a
// partially written sidecar.
func WritePackage(path string, pkg *Package) error {
	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal signature package: %w", err)
	}
	if err := utils.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write signature package: %w", err)
	}
	return nil
}

// ReadPackage loads and decodes a sidecar artifact.
func ReadPackage(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signature package: %w", err)
	}

	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parse signature package: %w", err)
	}
	if pkg.Signature == "" {
		return nil, fmt.Errorf("parse signature package: missing signature field")
	}
	return &pkg, nil
}

// ReadMetadata loads only the metadata of a sidecar artifact. It performs no
// cryptographic checks and must never be treated as proof of validity.
func ReadMetadata(path string) (*Metadata, error) {
	pkg, err := ReadPackage(path)
	if err != nil {
		return nil, err
	}
	md := pkg.Metadata
	return &md, nil
}
