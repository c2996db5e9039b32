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

// Package verify checks signed documents against their detached signature
// sidecars and arbitrates between the possible outcomes: the document is
// authentic, its content changed after signing, the signature itself does
// not hold, or no usable public key is available.
package verify

import (
	"encoding/hex"
	"errors"
	"fmt"

	hashengines "github.com/signedocs/doc-signing/pkg/hashing/engines"
	hashio "github.com/signedocs/doc-signing/pkg/hashing/engines/io"
	"github.com/signedocs/doc-signing/pkg/hashing/engines/memory"
	"github.com/signedocs/doc-signing/pkg/keys"
	"github.com/signedocs/doc-signing/pkg/logging"
	"github.com/signedocs/doc-signing/pkg/signature"
	"github.com/signedocs/doc-signing/pkg/utils"
)

// VerifierConfig configures a SignatureVerifier.
type VerifierConfig struct {
	// PublicKeyPath is an optional default public key. When set, it is
	// loaded at construction and used for requests that do not carry their
	// own key path.
	PublicKeyPath string
	// ChunkSize is the read size for document hashing. Zero means
	// hashio.DefaultChunkSize.
	ChunkSize int
	// Logger receives progress output. Nil means the default logger.
	Logger logging.Logger
}

// SignatureVerifier verifies detached document signatures. It may hold a
// default public key; per-request keys take precedence over it.
//
// A verifier is safe for concurrent use: it holds no mutable state after
// construction, and every verification works on its own Result.
type SignatureVerifier struct {
	defaultKey *keys.KeyPair
	chunkSize  int
	logger     logging.Logger
}

// NewSignatureVerifier builds a verifier. A missing default key file is not
// an error (requests can supply their own key); a present but unparseable
// one is.
func NewSignatureVerifier(cfg VerifierConfig) (*SignatureVerifier, error) {
	logger := logging.EnsureLogger(cfg.Logger)

	chunkSize := cfg.ChunkSize
	if chunkSize == 0 {
		chunkSize = hashio.DefaultChunkSize
	}
	if chunkSize < 0 {
		return nil, fmt.Errorf("chunk size must be non-negative, got %d", chunkSize)
	}

	v := &SignatureVerifier{
		chunkSize: chunkSize,
		logger:    logger,
	}

	if cfg.PublicKeyPath != "" {
		kp, err := keys.LoadPublicKey(cfg.PublicKeyPath)
		switch {
		case errors.Is(err, keys.ErrKeyNotFound):
			logger.Warn("default public key %s not found, requests must supply their own", cfg.PublicKeyPath)
		case err != nil:
			return nil, NewVerificationErrorWithPath(ErrTypeKeyUnavailable, cfg.PublicKeyPath, "cannot load default public key", err)
		default:
			v.defaultKey = kp
		}
	}

	return v, nil
}

// VerifyDocument runs the verification state machine for one document. The
// steps are strictly ordered and each failure is terminal:
//
//  1. Locate the sidecar and the original document.
//  2. Parse the sidecar package.
//  3. Recompute the document hash and compare it to the recorded one; a
//     mismatch means the content changed after signing, and the
//     cryptographic step is skipped since it could only speak to the
//     original content.
//  4. Resolve a public key: the request's key path wins, then the
//     verifier's default key.
//  5. Cryptographically verify the signature over the hash string.
//
// All outcomes are reported through the Result; nothing escapes as an
// error.
func (v *SignatureVerifier) VerifyDocument(req signature.VerifyRequest) signature.Result {
	// Step 1: locate.
	if !utils.FileExists(req.SignedDocumentPath) {
		return signature.Result{
			Status:  signature.StatusInvalid,
			Message: "signed document not found",
			Error:   fmt.Sprintf("file %s does not exist", req.SignedDocumentPath),
		}
	}

	documentPath, sidecarPath := resolvePaths(req)

	if !utils.FileExists(documentPath) {
		return signature.Result{
			Status:  signature.StatusInvalid,
			Message: "original document not found",
			Error:   fmt.Sprintf("file %s does not exist", documentPath),
		}
	}

	// Step 2: parse.
	pkg, err := signature.ReadPackage(sidecarPath)
	if err != nil {
		return signature.Result{
			Status:  signature.StatusInvalid,
			Message: "could not load signature file",
			Error:   err.Error(),
		}
	}

	sigBytes, err := hex.DecodeString(pkg.Signature)
	if err != nil {
		return signature.Result{
			Status:  signature.StatusInvalid,
			Message: "could not load signature file",
			Error:   fmt.Sprintf("signature is not valid hex: %v", err),
		}
	}

	metadata := pkg.Metadata

	// Step 3: hash check.
	currentHash, err := v.hashDocument(documentPath)
	if err != nil {
		return signature.Result{
			Status:  signature.StatusInvalid,
			Message: "failed to hash document",
			Error:   err.Error(),
		}
	}

	if currentHash != metadata.DocumentHash {
		return signature.Result{
			Status:   signature.StatusTampered,
			Message:  "document has been modified after signing",
			Metadata: &metadata,
			Error:    "document hash does not match the signed hash",
		}
	}

	// Step 4: key resolution.
	keyPair, result := v.resolveKey(req, &metadata)
	if result != nil {
		return *result
	}

	// Step 5: cryptographic verify.
	if err := keyPair.Verify([]byte(currentHash), sigBytes); err != nil {
		return signature.Result{
			Status:   signature.StatusInvalid,
			Message:  "invalid signature",
			Metadata: &metadata,
			Error:    "digital signature could not be verified",
		}
	}

	return signature.Result{
		Success:  true,
		Status:   signature.StatusValid,
		Message:  "valid signature - document is authentic and unmodified",
		Metadata: &metadata,
	}
}

// resolveKey picks the public key for a request. It returns either a usable
// key pair or a terminal Result.
func (v *SignatureVerifier) resolveKey(req signature.VerifyRequest, metadata *signature.Metadata) (*keys.KeyPair, *signature.Result) {
	if req.PublicKeyPath != "" {
		kp, err := keys.LoadPublicKey(req.PublicKeyPath)
		if err != nil {
			return nil, &signature.Result{
				Status:   signature.StatusKeyMismatch,
				Message:  "could not load public key",
				Metadata: metadata,
				Error:    err.Error(),
			}
		}
		return kp, nil
	}

	if v.defaultKey != nil {
		return v.defaultKey, nil
	}

	return nil, &signature.Result{
		Status:   signature.StatusKeyMismatch,
		Message:  "no public key available",
		Metadata: metadata,
		Error:    "a public key is required to verify the signature",
	}
}

// VerifyBatch verifies each document independently and reports an order-
// preserving slice of results plus a valid/total summary in the log.
func (v *SignatureVerifier) VerifyBatch(documentPaths []string) []signature.Result {
	results := make([]signature.Result, 0, len(documentPaths))

	v.logger.Info("verifying %d documents", len(documentPaths))
	for i, path := range documentPaths {
		v.logger.Debug("[%d/%d] verifying %s", i+1, len(documentPaths), path)
		result := v.VerifyDocument(signature.VerifyRequest{SignedDocumentPath: path})
		results = append(results, result)

		if result.Status == signature.StatusValid {
			v.logger.Info("%s: %s", path, result.Message)
		} else {
			v.logger.Warn("%s: %s", path, result.Message)
		}
	}

	valid := 0
	for _, r := range results {
		if r.Status == signature.StatusValid {
			valid++
		}
	}
	v.logger.Info("%d/%d signatures valid", valid, len(documentPaths))

	return results
}

// hashDocument streams the document through a SHA-256 engine and returns
// the lowercase hex digest.
func (v *SignatureVerifier) hashDocument(path string) (string, error) {
	engine, err := hashengines.Create(memory.SHA256AlgorithmName)
	if err != nil {
		return "", err
	}

	hasher, err := hashio.NewFileHasher(path, engine, v.chunkSize)
	if err != nil {
		return "", err
	}

	digest, err := hasher.Compute()
	if err != nil {
		return "", err
	}
	return digest.Hex(), nil
}

// resolvePaths maps a request onto (document path, sidecar path). The
// signed-document path may point at either the document or its sidecar.
func resolvePaths(req signature.VerifyRequest) (documentPath, sidecarPath string) {
	if signature.IsSidecarPath(req.SignedDocumentPath) {
		sidecarPath = req.SignedDocumentPath
		documentPath = req.OriginalDocumentPath
		if documentPath == "" {
			documentPath = signature.DocumentPathFromSidecar(sidecarPath)
		}
		return documentPath, sidecarPath
	}
	return req.SignedDocumentPath, signature.SidecarPath(req.SignedDocumentPath)
}

// ExtractMetadata reads the metadata block of a sidecar without verifying
// the signature. The returned metadata is unauthenticated.
func ExtractMetadata(sidecarPath string) (*signature.Metadata, error) {
	return signature.ReadMetadata(sidecarPath)
}

// SignatureInfo is an unauthenticated summary of a document's signature,
// suitable for listings and inspection UIs.
type SignatureInfo struct {
	HasSignature   bool                   `json:"has_signature"`
	SignerName     string                 `json:"signer_name,omitempty"`
	SignerEmail    string                 `json:"signer_email,omitempty"`
	SignatureDate  string                 `json:"signature_date,omitempty"`
	Algorithm      string                 `json:"algorithm,omitempty"`
	DocumentHash   string                 `json:"document_hash,omitempty"`
	AdditionalInfo map[string]interface{} `json:"additional_info,omitempty"`
	Message        string                 `json:"message,omitempty"`
}

// GetSignatureInfo summarizes the signature attached to a document without
// verifying it. The document hash is truncated for display.
func GetSignatureInfo(documentPath string) SignatureInfo {
	sidecarPath := signature.SidecarPath(documentPath)

	if !utils.FileExists(sidecarPath) {
		return SignatureInfo{
			HasSignature: false,
			Message:      "no signature file found",
		}
	}

	metadata, err := signature.ReadMetadata(sidecarPath)
	if err != nil {
		return SignatureInfo{
			HasSignature: true,
			Message:      "signature file is corrupt",
		}
	}

	displayHash := metadata.DocumentHash
	if len(displayHash) > 16 {
		displayHash = displayHash[:16] + "..."
	}

	return SignatureInfo{
		HasSignature:   true,
		SignerName:     metadata.SignerName,
		SignerEmail:    metadata.SignerEmail,
		SignatureDate:  metadata.SignatureDate.Format("2006-01-02T15:04:05Z07:00"),
		Algorithm:      metadata.SignatureAlgorithm,
		DocumentHash:   displayHash,
		AdditionalInfo: metadata.AdditionalInfo,
	}
}
