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

package signing

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/signedocs/doc-signing/pkg/keys"
	"github.com/signedocs/doc-signing/pkg/signature"
)

// sha256("abc")
const abcDigest = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

func newTestSigner(t *testing.T) *DocumentSigner {
	t.Helper()

	kp, err := keys.GenerateKeyPair(2048)
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	signer, err := NewDocumentSignerFromKeyPair(kp, 0, nil)
	if err != nil {
		t.Fatalf("NewDocumentSignerFromKeyPair() error = %v", err)
	}
	return signer
}

func writeTestDocument(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing document: %v", err)
	}
	return path
}

func TestNewDocumentSigner_MissingKeysFailConstruction(t *testing.T) {
	dir := t.TempDir()

	_, err := NewDocumentSigner(DocumentSignerConfig{
		PrivateKeyPath: filepath.Join(dir, "absent.pem"),
		PublicKeyPath:  filepath.Join(dir, "absent_pub.pem"),
	})
	if err == nil {
		t.Fatal("expected construction error without key files, got none")
	}
}

func TestNewDocumentSigner_GenerateMissingKeys(t *testing.T) {
	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private_key.pem")
	publicPath := filepath.Join(dir, "public_key.pem")

	signer, err := NewDocumentSigner(DocumentSignerConfig{
		PrivateKeyPath:      privatePath,
		PublicKeyPath:       publicPath,
		GenerateMissingKeys: true,
	})
	if err != nil {
		t.Fatalf("NewDocumentSigner() error = %v", err)
	}
	if !keys.KeyFilesExist(privatePath, publicPath) {
		t.Error("signer bootstrap did not persist key files")
	}
	if signer.KeyFingerprint() == "" {
		t.Error("signer has no key fingerprint")
	}

	// Constructing again must load the same pair, not regenerate.
	again, err := NewDocumentSigner(DocumentSignerConfig{
		PrivateKeyPath:      privatePath,
		PublicKeyPath:       publicPath,
		GenerateMissingKeys: true,
	})
	if err != nil {
		t.Fatalf("NewDocumentSigner() second call error = %v", err)
	}
	if again.KeyFingerprint() != signer.KeyFingerprint() {
		t.Error("second construction produced a different key pair")
	}
}

func TestSignDocument_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	signer := newTestSigner(t)
	docPath := writeTestDocument(t, dir, "doc.txt", []byte("abc"))

	result := signer.SignDocument(signature.SignRequest{
		DocumentPath: docPath,
		SignerName:   "Ada Lovelace",
		SignerEmail:  "ada@example.com",
		AdditionalInfo: map[string]interface{}{
			"department": "engineering",
		},
	})

	if !result.Success {
		t.Fatalf("SignDocument() failed: %s (%s)", result.Message, result.Error)
	}
	if result.Status != signature.StatusValid {
		t.Errorf("Status = %q, want %q", result.Status, signature.StatusValid)
	}
	if result.SignedFilePath != docPath+".sig" {
		t.Errorf("SignedFilePath = %q, want %q", result.SignedFilePath, docPath+".sig")
	}

	md := result.Metadata
	if md == nil {
		t.Fatal("result has no metadata")
	}
	if md.DocumentHash != abcDigest {
		t.Errorf("DocumentHash = %q, want %q", md.DocumentHash, abcDigest)
	}
	if md.SignatureAlgorithm != signature.AlgorithmRSAPSSSHA256 {
		t.Errorf("SignatureAlgorithm = %q, want %q", md.SignatureAlgorithm, signature.AlgorithmRSAPSSSHA256)
	}
	if md.KeyFingerprint != signer.KeyFingerprint() {
		t.Error("metadata fingerprint does not match the signing key")
	}
	if md.AdditionalInfo["document_type"] != "txt" {
		t.Errorf("AdditionalInfo[document_type] = %v, want txt", md.AdditionalInfo["document_type"])
	}
	if md.AdditionalInfo["document_name"] != "doc.txt" {
		t.Errorf("AdditionalInfo[document_name] = %v, want doc.txt", md.AdditionalInfo["document_name"])
	}
	if md.AdditionalInfo["department"] != "engineering" {
		t.Error("caller AdditionalInfo was not merged into metadata")
	}

	// The persisted sidecar carries the same signature the result reports.
	pkg, err := signature.ReadPackage(result.SignedFilePath)
	if err != nil {
		t.Fatalf("ReadPackage() error = %v", err)
	}
	if pkg.Signature != hex.EncodeToString(result.SignatureData) {
		t.Error("sidecar signature differs from result signature bytes")
	}
}

func TestSignDocument_OutputPathOverride(t *testing.T) {
	dir := t.TempDir()
	signer := newTestSigner(t)
	docPath := writeTestDocument(t, dir, "doc.txt", []byte("abc"))
	outPath := filepath.Join(dir, "elsewhere", "custom.sig")

	result := signer.SignDocument(signature.SignRequest{
		DocumentPath: docPath,
		SignerName:   "Ada Lovelace",
		SignerEmail:  "ada@example.com",
		OutputPath:   outPath,
	})

	if !result.Success {
		t.Fatalf("SignDocument() failed: %s (%s)", result.Message, result.Error)
	}
	if result.SignedFilePath != outPath {
		t.Errorf("SignedFilePath = %q, want %q", result.SignedFilePath, outPath)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("sidecar was not written at the override path: %v", err)
	}
}

func TestSignDocument_MissingFile(t *testing.T) {
	signer := newTestSigner(t)

	result := signer.SignDocument(signature.SignRequest{
		DocumentPath: filepath.Join(t.TempDir(), "absent.txt"),
		SignerName:   "Ada Lovelace",
		SignerEmail:  "ada@example.com",
	})

	if result.Success {
		t.Fatal("SignDocument() on missing file reported success")
	}
	if result.Message != "document not found" {
		t.Errorf("Message = %q, want %q", result.Message, "document not found")
	}
}

func TestSignDocument_UnsupportedType(t *testing.T) {
	dir := t.TempDir()
	signer := newTestSigner(t)
	docPath := writeTestDocument(t, dir, "setup.exe", []byte("MZ"))

	result := signer.SignDocument(signature.SignRequest{
		DocumentPath: docPath,
		SignerName:   "Ada Lovelace",
		SignerEmail:  "ada@example.com",
	})

	if result.Success {
		t.Fatal("SignDocument() on unsupported type reported success")
	}
	if result.Message != "unsupported document type" {
		t.Errorf("Message = %q, want %q", result.Message, "unsupported document type")
	}
	// The type gate fires before hashing, so no sidecar appears.
	if _, err := os.Stat(docPath + ".sig"); !os.IsNotExist(err) {
		t.Error("sidecar written for rejected document")
	}
}

func TestSignBatch_IndependentFailures(t *testing.T) {
	dir := t.TempDir()
	signer := newTestSigner(t)

	good1 := writeTestDocument(t, dir, "one.txt", []byte("first"))
	bad := filepath.Join(dir, "absent.txt")
	good2 := writeTestDocument(t, dir, "two.pdf", []byte("second"))

	results := signer.SignBatch([]string{good1, bad, good2}, "Ada Lovelace", "ada@example.com")

	if len(results) != 3 {
		t.Fatalf("SignBatch() returned %d results, want 3", len(results))
	}
	if !results[0].Success {
		t.Errorf("first document failed: %s", results[0].Error)
	}
	if results[1].Success {
		t.Error("missing document reported success")
	}
	if !results[2].Success {
		t.Errorf("third document failed after earlier failure: %s", results[2].Error)
	}
}
