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

package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/signedocs/doc-signing/pkg/keys"
	"github.com/signedocs/doc-signing/pkg/signature"
	"github.com/signedocs/doc-signing/pkg/signing"
)

// signedFixture is a signed document with its key files on disk.
type signedFixture struct {
	dir           string
	documentPath  string
	sidecarPath   string
	publicKeyPath string
}

// newSignedFixture generates a key pair, signs a document with it, and
// persists the public key for verification.
func newSignedFixture(t *testing.T, content []byte) signedFixture {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private_key.pem")
	publicPath := filepath.Join(dir, "public_key.pem")

	if _, err := keys.GenerateAndSaveKeys(privatePath, publicPath, 2048, ""); err != nil {
		t.Fatalf("GenerateAndSaveKeys() error = %v", err)
	}

	docPath := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(docPath, content, 0o644); err != nil {
		t.Fatalf("writing document: %v", err)
	}

	signer, err := signing.NewDocumentSigner(signing.DocumentSignerConfig{
		PrivateKeyPath: privatePath,
		PublicKeyPath:  publicPath,
	})
	if err != nil {
		t.Fatalf("NewDocumentSigner() error = %v", err)
	}

	result := signer.SignDocument(signature.SignRequest{
		DocumentPath: docPath,
		SignerName:   "Ada Lovelace",
		SignerEmail:  "ada@example.com",
	})
	if !result.Success {
		t.Fatalf("SignDocument() failed: %s (%s)", result.Message, result.Error)
	}

	return signedFixture{
		dir:           dir,
		documentPath:  docPath,
		sidecarPath:   result.SignedFilePath,
		publicKeyPath: publicPath,
	}
}

func newTestVerifier(t *testing.T, publicKeyPath string) *SignatureVerifier {
	t.Helper()
	v, err := NewSignatureVerifier(VerifierConfig{PublicKeyPath: publicKeyPath})
	if err != nil {
		t.Fatalf("NewSignatureVerifier() error = %v", err)
	}
	return v
}

func TestVerifyDocument_Valid(t *testing.T) {
	fx := newSignedFixture(t, []byte("abc"))
	v := newTestVerifier(t, fx.publicKeyPath)

	result := v.VerifyDocument(signature.VerifyRequest{SignedDocumentPath: fx.documentPath})

	if !result.Success {
		t.Fatalf("VerifyDocument() failed: %s (%s)", result.Message, result.Error)
	}
	if result.Status != signature.StatusValid {
		t.Errorf("Status = %q, want %q", result.Status, signature.StatusValid)
	}
	if result.Metadata == nil || result.Metadata.SignerName != "Ada Lovelace" {
		t.Error("result does not carry the signer metadata")
	}
}

func TestVerifyDocument_SidecarPathAsInput(t *testing.T) {
	fx := newSignedFixture(t, []byte("abc"))
	v := newTestVerifier(t, fx.publicKeyPath)

	result := v.VerifyDocument(signature.VerifyRequest{SignedDocumentPath: fx.sidecarPath})

	if result.Status != signature.StatusValid {
		t.Errorf("Status = %q, want %q (message: %s)", result.Status, signature.StatusValid, result.Message)
	}
}

func TestVerifyDocument_Tampered(t *testing.T) {
	fx := newSignedFixture(t, []byte("abc"))
	v := newTestVerifier(t, fx.publicKeyPath)

	// Append a single byte after signing.
	f, err := os.OpenFile(fx.documentPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("opening document: %v", err)
	}
	if _, err := f.Write([]byte("!")); err != nil {
		t.Fatalf("appending to document: %v", err)
	}
	f.Close()

	result := v.VerifyDocument(signature.VerifyRequest{SignedDocumentPath: fx.documentPath})

	if result.Success {
		t.Fatal("tampered document reported success")
	}
	if result.Status != signature.StatusTampered {
		t.Errorf("Status = %q, want %q", result.Status, signature.StatusTampered)
	}
	if result.Metadata == nil {
		t.Error("tampered result should still carry the claimed metadata")
	}
}

func TestVerifyDocument_WrongKeyIsInvalidNotTampered(t *testing.T) {
	fx := newSignedFixture(t, []byte("abc"))

	// A different key pair's public key.
	otherDir := t.TempDir()
	otherPublic := filepath.Join(otherDir, "public_key.pem")
	if _, err := keys.GenerateAndSaveKeys(
		filepath.Join(otherDir, "private_key.pem"), otherPublic, 2048, ""); err != nil {
		t.Fatalf("GenerateAndSaveKeys() error = %v", err)
	}

	v := newTestVerifier(t, otherPublic)
	result := v.VerifyDocument(signature.VerifyRequest{SignedDocumentPath: fx.documentPath})

	// Content is intact, so this is a signature failure, not tampering.
	if result.Status != signature.StatusInvalid {
		t.Errorf("Status = %q, want %q", result.Status, signature.StatusInvalid)
	}
}

func TestVerifyDocument_RequestKeyOverridesDefault(t *testing.T) {
	fx := newSignedFixture(t, []byte("abc"))

	// Verifier holds a non-matching default key; the request supplies the
	// right one.
	otherDir := t.TempDir()
	otherPublic := filepath.Join(otherDir, "public_key.pem")
	if _, err := keys.GenerateAndSaveKeys(
		filepath.Join(otherDir, "private_key.pem"), otherPublic, 2048, ""); err != nil {
		t.Fatalf("GenerateAndSaveKeys() error = %v", err)
	}

	v := newTestVerifier(t, otherPublic)
	result := v.VerifyDocument(signature.VerifyRequest{
		SignedDocumentPath: fx.documentPath,
		PublicKeyPath:      fx.publicKeyPath,
	})

	if result.Status != signature.StatusValid {
		t.Errorf("Status = %q, want %q (message: %s)", result.Status, signature.StatusValid, result.Message)
	}
}

func TestVerifyDocument_NoKeyAvailable(t *testing.T) {
	fx := newSignedFixture(t, []byte("abc"))
	v := newTestVerifier(t, "")

	result := v.VerifyDocument(signature.VerifyRequest{SignedDocumentPath: fx.documentPath})

	if result.Status != signature.StatusKeyMismatch {
		t.Errorf("Status = %q, want %q", result.Status, signature.StatusKeyMismatch)
	}
}

func TestVerifyDocument_UnloadableRequestKey(t *testing.T) {
	fx := newSignedFixture(t, []byte("abc"))
	v := newTestVerifier(t, fx.publicKeyPath)

	result := v.VerifyDocument(signature.VerifyRequest{
		SignedDocumentPath: fx.documentPath,
		PublicKeyPath:      filepath.Join(fx.dir, "absent.pem"),
	})

	if result.Status != signature.StatusKeyMismatch {
		t.Errorf("Status = %q, want %q", result.Status, signature.StatusKeyMismatch)
	}
}

func TestVerifyDocument_MissingInputs(t *testing.T) {
	fx := newSignedFixture(t, []byte("abc"))
	v := newTestVerifier(t, fx.publicKeyPath)

	tests := []struct {
		name string
		req  signature.VerifyRequest
	}{
		{
			name: "missing signed document",
			req:  signature.VerifyRequest{SignedDocumentPath: filepath.Join(fx.dir, "absent.txt")},
		},
		{
			name: "sidecar without document",
			req: signature.VerifyRequest{
				SignedDocumentPath:   fx.sidecarPath,
				OriginalDocumentPath: filepath.Join(fx.dir, "absent.txt"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.VerifyDocument(tt.req)
			if result.Success {
				t.Fatal("expected failure but got success")
			}
			if result.Status != signature.StatusInvalid {
				t.Errorf("Status = %q, want %q", result.Status, signature.StatusInvalid)
			}
		})
	}
}

func TestVerifyDocument_CorruptSidecar(t *testing.T) {
	fx := newSignedFixture(t, []byte("abc"))
	v := newTestVerifier(t, fx.publicKeyPath)

	if err := os.WriteFile(fx.sidecarPath, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("corrupting sidecar: %v", err)
	}

	result := v.VerifyDocument(signature.VerifyRequest{SignedDocumentPath: fx.documentPath})

	if result.Status != signature.StatusInvalid {
		t.Errorf("Status = %q, want %q", result.Status, signature.StatusInvalid)
	}
	if result.Message != "could not load signature file" {
		t.Errorf("Message = %q, want %q", result.Message, "could not load signature file")
	}
}

func TestVerifyBatch(t *testing.T) {
	fx := newSignedFixture(t, []byte("abc"))
	v := newTestVerifier(t, fx.publicKeyPath)

	missing := filepath.Join(fx.dir, "absent.txt")
	results := v.VerifyBatch([]string{fx.documentPath, missing})

	if len(results) != 2 {
		t.Fatalf("VerifyBatch() returned %d results, want 2", len(results))
	}
	if results[0].Status != signature.StatusValid {
		t.Errorf("first result status = %q, want %q", results[0].Status, signature.StatusValid)
	}
	if results[1].Status != signature.StatusInvalid {
		t.Errorf("second result status = %q, want %q", results[1].Status, signature.StatusInvalid)
	}
}

func TestExtractMetadata(t *testing.T) {
	fx := newSignedFixture(t, []byte("abc"))

	md, err := ExtractMetadata(fx.sidecarPath)
	if err != nil {
		t.Fatalf("ExtractMetadata() error = %v", err)
	}
	if md.SignerName != "Ada Lovelace" {
		t.Errorf("SignerName = %q, want %q", md.SignerName, "Ada Lovelace")
	}
}

func TestGetSignatureInfo(t *testing.T) {
	fx := newSignedFixture(t, []byte("abc"))

	info := GetSignatureInfo(fx.documentPath)
	if !info.HasSignature {
		t.Fatal("HasSignature = false for signed document")
	}
	if info.SignerEmail != "ada@example.com" {
		t.Errorf("SignerEmail = %q, want %q", info.SignerEmail, "ada@example.com")
	}
	// 16 hex chars plus the ellipsis.
	if len(info.DocumentHash) != 19 {
		t.Errorf("DocumentHash = %q, want truncated form", info.DocumentHash)
	}

	unsigned := filepath.Join(fx.dir, "unsigned.txt")
	if err := os.WriteFile(unsigned, []byte("plain"), 0o644); err != nil {
		t.Fatalf("writing document: %v", err)
	}
	info = GetSignatureInfo(unsigned)
	if info.HasSignature {
		t.Error("HasSignature = true for unsigned document")
	}

	if err := os.WriteFile(fx.sidecarPath, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("corrupting sidecar: %v", err)
	}
	info = GetSignatureInfo(fx.documentPath)
	if !info.HasSignature || info.Message != "signature file is corrupt" {
		t.Errorf("corrupt sidecar info = %+v", info)
	}
}
