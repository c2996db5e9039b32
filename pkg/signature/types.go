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

// Package signature defines the data model shared by the signing and
// verification sides: document types, signature statuses, signature
// metadata, the sidecar package format, and the request/result value
// objects.
package signature

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DocumentType identifies the kind of document being signed. It is a closed
// set resolved once from the file extension when a request enters the
// subsystem; it is never re-derived later.
type DocumentType string

const (
	// DocumentTypeText is a plain text document (.txt).
	DocumentTypeText DocumentType = "txt"
	// DocumentTypePDF is a PDF document (.pdf).
	DocumentTypePDF DocumentType = "pdf"
	// DocumentTypeZip is a zip archive (.zip).
	DocumentTypeZip DocumentType = "zip"
)

// ErrUnsupportedDocumentType is returned when a document's extension is not
// in the supported set. The check happens before any file content is read.
var ErrUnsupportedDocumentType = fmt.Errorf("unsupported document type (supported: .txt, .pdf, .zip)")

// DetectDocumentType resolves a DocumentType from the file extension of
// path. The comparison is case-insensitive.
func DetectDocumentType(path string) (DocumentType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return DocumentTypeText, nil
	case ".pdf":
		return DocumentTypePDF, nil
	case ".zip":
		return DocumentTypeZip, nil
	default:
		return "", ErrUnsupportedDocumentType
	}
}

// Status is the outcome of a signing or verification operation.
type Status string

const (
	// StatusValid means the signature verified against unmodified content.
	StatusValid Status = "valid"
	// StatusInvalid means the signature failed cryptographic verification,
	// or a required input could not be located or parsed.
	StatusInvalid Status = "invalid"
	// StatusTampered means the document content changed after signing
	// (the recorded hash no longer matches).
	StatusTampered Status = "tampered"
	// StatusExpired is declared for compatibility with sidecars produced by
	// implementations that emit it. No operation in this module produces it;
	// there is no expiry policy.
	StatusExpired Status = "expired"
	// StatusKeyMismatch means no usable public key was available for
	// verification.
	StatusKeyMismatch Status = "key_mismatch"
)

// AlgorithmRSAPSSSHA256 is the signature algorithm identifier recorded in
// metadata. It is the only algorithm this module produces.
const AlgorithmRSAPSSSHA256 = "RSA-PSS with SHA-256"

// Metadata describes a signature: who signed, when, what content hash was
// signed, with which algorithm and key. It is created at signing time and
// never mutated afterwards.
type Metadata struct {
	SignerName         string                 `json:"signer_name"`
	SignerEmail        string                 `json:"signer_email"`
	SignatureDate      time.Time              `json:"signature_date"`
	DocumentHash       string                 `json:"document_hash"`
	SignatureAlgorithm string                 `json:"signature_algorithm"`
	KeyFingerprint     string                 `json:"key_fingerprint"`
	AdditionalInfo     map[string]interface{} `json:"additional_info"`
}

// Package is the sidecar artifact persisted next to a signed document:
// the hex-encoded signature bytes plus the signature metadata. It is
// written once per signing operation and read-only thereafter.
type Package struct {
	Signature string   `json:"signature"`
	Metadata  Metadata `json:"metadata"`
}

// SignRequest is the transient input for a signing operation.
type SignRequest struct {
	// DocumentPath is the document to sign.
	DocumentPath string
	// SignerName identifies the signer.
	SignerName string
	// SignerEmail is the signer's email address.
	SignerEmail string
	// OutputPath overrides the default sidecar path (<document>.sig).
	OutputPath string
	// AdditionalInfo is merged into the metadata's additional-info mapping.
	AdditionalInfo map[string]interface{}
}

// VerifyRequest is the transient input for a verification operation.
type VerifyRequest struct {
	// SignedDocumentPath is either the signed document or its .sig sidecar.
	SignedDocumentPath string
	// OriginalDocumentPath optionally names the document when
	// SignedDocumentPath points at the sidecar directly.
	OriginalDocumentPath string
	// PublicKeyPath optionally overrides the verifier's loaded public key.
	PublicKeyPath string
}

// Result is the structured outcome of a signing or verification operation.
// Operations return a fresh Result per call and never mutate it after
// return; failures are reported here rather than as raised errors.
type Result struct {
	// Success reports whether the operation succeeded.
	Success bool `json:"success"`
	// Status classifies the outcome for verification-style operations.
	Status Status `json:"status,omitempty"`
	// Message is a human-readable description of the outcome.
	Message string `json:"message"`
	// Metadata carries the signature metadata when available.
	Metadata *Metadata `json:"metadata,omitempty"`
	// SignatureData holds the raw signature bytes of a signing operation.
	SignatureData []byte `json:"-"`
	// SignedFilePath is the sidecar path written by a signing operation.
	SignedFilePath string `json:"signed_file_path,omitempty"`
	// Error carries failure detail when Success is false.
	Error string `json:"error,omitempty"`
}
