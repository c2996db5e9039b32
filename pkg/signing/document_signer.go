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

// Package signing turns a document plus signer identity into a durable,
// independently verifiable detached signature artifact.
package signing

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	hashengines "github.com/signedocs/doc-signing/pkg/hashing/engines"
	hashio "github.com/signedocs/doc-signing/pkg/hashing/engines/io"
	"github.com/signedocs/doc-signing/pkg/hashing/engines/memory"
	"github.com/signedocs/doc-signing/pkg/keys"
	"github.com/signedocs/doc-signing/pkg/logging"
	"github.com/signedocs/doc-signing/pkg/signature"
	"github.com/signedocs/doc-signing/pkg/utils"
)

// DocumentSignerConfig configures a DocumentSigner.
type DocumentSignerConfig struct {
	// PrivateKeyPath is the PEM file holding the RSA private key.
	PrivateKeyPath string
	// PublicKeyPath is the PEM file holding the RSA public key. Only used
	// when bootstrapping missing keys.
	PublicKeyPath string
	// Password decrypts the private key if it is passphrase-encrypted, and
	// encrypts it when bootstrapping.
	Password string
	// GenerateMissingKeys opts in to generating and persisting a fresh key
	// pair when the key files do not exist. Without it, missing keys are a
	// construction error.
	GenerateMissingKeys bool
	// KeySize is the modulus size used when bootstrapping. Zero means
	// keys.DefaultKeySize.
	KeySize int
	// ChunkSize is the read size for document hashing. Zero means
	// hashio.DefaultChunkSize.
	ChunkSize int
	// Logger receives progress output. Nil means the default logger.
	Logger logging.Logger
}

// DocumentSigner signs documents with an RSA key pair it owns. Construction
// is the only operation that can fail hard: a signer without a usable key
// pair is never returned. All signing operations report failures through
// the returned Result instead.
type DocumentSigner struct {
	keyPair   *keys.KeyPair
	chunkSize int
	logger    logging.Logger
}

// NewDocumentSigner builds a signer from key files on disk. When
// cfg.GenerateMissingKeys is set and either key file is absent, a fresh
// pair is generated and persisted first (explicit opt-in; there is no
// silent bootstrap). Returns an error if no usable key pair can be
// obtained.
func NewDocumentSigner(cfg DocumentSignerConfig) (*DocumentSigner, error) {
	logger := logging.EnsureLogger(cfg.Logger)

	if cfg.GenerateMissingKeys && !keys.KeyFilesExist(cfg.PrivateKeyPath, cfg.PublicKeyPath) {
		size := cfg.KeySize
		if size == 0 {
			size = keys.DefaultKeySize
		}
		logger.Info("signing keys not found, generating a fresh %d-bit pair", size)
		if _, err := keys.GenerateAndSaveKeys(cfg.PrivateKeyPath, cfg.PublicKeyPath, size, cfg.Password); err != nil {
			return nil, fmt.Errorf("bootstrap signing keys: %w", err)
		}
	}

	keyPair, err := keys.LoadPrivateKey(cfg.PrivateKeyPath, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("no usable signing key pair: %w", err)
	}

	return NewDocumentSignerFromKeyPair(keyPair, cfg.ChunkSize, logger)
}

// NewDocumentSignerFromKeyPair builds a signer around an already-loaded key
// pair. The pair must include the private key.
func NewDocumentSignerFromKeyPair(keyPair *keys.KeyPair, chunkSize int, logger logging.Logger) (*DocumentSigner, error) {
	if !keyPair.CanSign() {
		return nil, fmt.Errorf("key pair has no private key")
	}
	if chunkSize == 0 {
		chunkSize = hashio.DefaultChunkSize
	}
	if chunkSize < 0 {
		return nil, fmt.Errorf("chunk size must be non-negative, got %d", chunkSize)
	}

	return &DocumentSigner{
		keyPair:   keyPair,
		chunkSize: chunkSize,
		logger:    logging.EnsureLogger(logger),
	}, nil
}

// KeyFingerprint returns the fingerprint of the signer's public key.
func (s *DocumentSigner) KeyFingerprint() string {
	return s.keyPair.Fingerprint()
}

// SignDocument signs a single document and persists the sidecar artifact.
//
// The flow is: validate the document exists, resolve its type from the
// extension, stream-hash the content with SHA-256, build metadata, sign the
// UTF-8 bytes of the hex hash string with RSA-PSS, and write the sidecar.
// Every failure is reported in the Result; nothing escapes as an error.
func (s *DocumentSigner) SignDocument(req signature.SignRequest) signature.Result {
	if !utils.FileExists(req.DocumentPath) {
		return signature.Result{
			Message: "document not found",
			Error:   fmt.Sprintf("file %s does not exist", req.DocumentPath),
		}
	}

	// Cheap rejection before any content is read.
	docType, err := signature.DetectDocumentType(req.DocumentPath)
	if err != nil {
		return signature.Result{
			Message: "unsupported document type",
			Error:   err.Error(),
		}
	}

	documentHash, err := s.hashDocument(req.DocumentPath)
	if err != nil {
		return signature.Result{
			Message: "failed to hash document",
			Error:   err.Error(),
		}
	}

	additionalInfo := map[string]interface{}{
		"document_type": string(docType),
		"document_name": filepath.Base(req.DocumentPath),
	}
	for k, v := range req.AdditionalInfo {
		additionalInfo[k] = v
	}

	metadata := signature.Metadata{
		SignerName:         req.SignerName,
		SignerEmail:        req.SignerEmail,
		SignatureDate:      time.Now().UTC(),
		DocumentHash:       documentHash,
		SignatureAlgorithm: signature.AlgorithmRSAPSSSHA256,
		KeyFingerprint:     s.keyPair.Fingerprint(),
		AdditionalInfo:     additionalInfo,
	}

	// The signature covers the hex hash string, not the raw file bytes, so
	// signing cost stays constant and the document is streamed only once.
	sig, err := s.keyPair.Sign([]byte(documentHash))
	if err != nil {
		return signature.Result{
			Message: "failed to create signature",
			Error:   err.Error(),
		}
	}

	sidecarPath := req.OutputPath
	if sidecarPath == "" {
		sidecarPath = signature.SidecarPath(req.DocumentPath)
	}

	pkg := &signature.Package{
		Signature: hex.EncodeToString(sig),
		Metadata:  metadata,
	}
	if err := signature.WritePackage(sidecarPath, pkg); err != nil {
		return signature.Result{
			Message: "failed to persist signature",
			Error:   err.Error(),
		}
	}

	s.logger.Debug("signature written to %s", sidecarPath)

	return signature.Result{
		Success:        true,
		Status:         signature.StatusValid,
		Message:        "document signed successfully",
		Metadata:       &metadata,
		SignatureData:  sig,
		SignedFilePath: sidecarPath,
	}
}

// SignBatch signs each path independently with a shared signer identity.
// One path's failure does not abort the others; the results preserve input
// order.
func (s *DocumentSigner) SignBatch(documentPaths []string, signerName, signerEmail string) []signature.Result {
	results := make([]signature.Result, 0, len(documentPaths))

	s.logger.Info("signing %d documents", len(documentPaths))
	for i, path := range documentPaths {
		s.logger.Debug("[%d/%d] signing %s", i+1, len(documentPaths), path)
		result := s.SignDocument(signature.SignRequest{
			DocumentPath: path,
			SignerName:   signerName,
			SignerEmail:  signerEmail,
		})
		if !result.Success {
			s.logger.Warn("signing %s failed: %s", path, result.Error)
		}
		results = append(results, result)
	}

	successful := 0
	for _, r := range results {
		if r.Success {
			successful++
		}
	}
	s.logger.Info("signed %d/%d documents successfully", successful, len(documentPaths))

	return results
}

// hashDocument streams the document through a SHA-256 engine and returns
// the lowercase hex digest.
func (s *DocumentSigner) hashDocument(path string) (string, error) {
	engine, err := hashengines.Create(memory.SHA256AlgorithmName)
	if err != nil {
		return "", err
	}

	hasher, err := hashio.NewFileHasher(path, engine, s.chunkSize)
	if err != nil {
		return "", err
	}

	digest, err := hasher.Compute()
	if err != nil {
		return "", err
	}
	return digest.Hex(), nil
}
