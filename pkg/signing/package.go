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

package signing

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/signedocs/doc-signing/pkg/signature"
	"github.com/signedocs/doc-signing/pkg/utils"
)

// PackageExt is the extension of a signed distribution archive.
const PackageExt = ".signed.zip"

// CreateSignedPackage bundles a document and its signature sidecar into a
// single zip archive for distribution. signaturePath may be empty, in which
// case the document's default sidecar path is used. outputPath may be empty,
// in which case the archive is written next to the document with the
// ".signed.zip" extension. Returns the archive path.
//
// Both entries are stored under their base names so the archive extracts
// flat regardless of where the inputs lived.
func CreateSignedPackage(documentPath, signaturePath, outputPath string) (string, error) {
	if err := utils.ValidateFileExists("document", documentPath); err != nil {
		return "", err
	}

	if signaturePath == "" {
		signaturePath = signature.SidecarPath(documentPath)
	}
	if err := utils.ValidateFileExists("signature file", signaturePath); err != nil {
		return "", err
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(documentPath, filepath.Ext(documentPath)) + PackageExt
	}

	f, err := os.CreateTemp(filepath.Dir(outputPath), ".pkg-*")
	if err != nil {
		return "", fmt.Errorf("create package file: %w", err)
	}
	tmpName := f.Name()
	defer func() {
		if tmpName != "" {
			os.Remove(tmpName)
		}
	}()

	zw := zip.NewWriter(f)
	for _, path := range []string{documentPath, signaturePath} {
		if err := addFileToZip(zw, path); err != nil {
			zw.Close()
			f.Close()
			return "", err
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("finalize package archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close package file: %w", err)
	}

	if err := os.Rename(tmpName, outputPath); err != nil {
		return "", fmt.Errorf("move package into place: %w", err)
	}
	tmpName = ""
	return outputPath, nil
}

func addFileToZip(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s for packaging: %w", path, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("build archive header for %s: %w", path, err)
	}
	header.Name = filepath.Base(path)
	header.Method = zip.Deflate

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("add %s to archive: %w", path, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write %s into archive: %w", path, err)
	}
	return nil
}
