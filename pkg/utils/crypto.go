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

package utils

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
)

// pssOptions returns the RSA-PSS parameters used for all signatures in this
// module: MGF1 with SHA-256 and the maximum salt length the key allows.
// PSSSaltLengthAuto selects the maximum salt when signing and accepts any
// salt length when verifying, so signatures from implementations that use a
// fixed salt still verify.
func pssOptions() *rsa.PSSOptions {
	return &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	}
}

// SignPSS signs data with RSA-PSS over a SHA-256 digest of data.
//
// For document signatures, data is the UTF-8 bytes of the lowercase hex
// document hash string, not the raw document bytes. Signing the hash string
// keeps signing cost independent of document size and avoids streaming the
// document a second time.
func SignPSS(key *rsa.PrivateKey, data []byte) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("private key must not be nil")
	}

	digest := sha256.Sum256(data)
	sig, err := rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:], pssOptions())
	if err != nil {
		return nil, fmt.Errorf("RSA-PSS signing failed: %w", err)
	}
	return sig, nil
}

// VerifyPSS verifies an RSA-PSS signature over a SHA-256 digest of message.
// Returns nil if the signature is valid.
func VerifyPSS(key *rsa.PublicKey, message, sig []byte) error {
	if key == nil {
		return fmt.Errorf("public key must not be nil")
	}

	digest := sha256.Sum256(message)
	if err := rsa.VerifyPSS(key, crypto.SHA256, digest[:], sig, pssOptions()); err != nil {
		return fmt.Errorf("RSA-PSS signature verification failed: %w", err)
	}
	return nil
}
