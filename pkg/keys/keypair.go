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

// Package keys owns the RSA key pair lifecycle: generation, PEM persistence
// (optionally passphrase-encrypted PKCS8), loading, and fingerprint
// derivation.
//
// A KeyPair is an immutable value: load and generate operations return a new
// KeyPair rather than mutating shared state, and the holder owns it for the
// lifetime of the signer or verifier built on top of it.
package keys

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"fmt"

	"github.com/signedocs/doc-signing/pkg/utils"
)

// KeyPair holds an RSA private key and/or its public key. A pair loaded from
// a public key file has no private half and can only verify.
type KeyPair struct {
	private *rsa.PrivateKey
	public  *rsa.PublicKey
}

// CanSign reports whether the pair includes the private key.
func (kp *KeyPair) CanSign() bool {
	return kp != nil && kp.private != nil
}

// HasPublicKey reports whether the pair includes a public key.
func (kp *KeyPair) HasPublicKey() bool {
	return kp != nil && kp.public != nil
}

// PublicKey returns the RSA public key, or nil if none is present.
func (kp *KeyPair) PublicKey() *rsa.PublicKey {
	if kp == nil {
		return nil
	}
	return kp.public
}

// Size returns the modulus size in bits, or 0 if no public key is present.
func (kp *KeyPair) Size() int {
	if !kp.HasPublicKey() {
		return 0
	}
	return kp.public.N.BitLen()
}

// Sign produces an RSA-PSS signature (MGF1/SHA-256, maximum salt) over data.
// Returns an error if the pair has no private key.
func (kp *KeyPair) Sign(data []byte) ([]byte, error) {
	if !kp.CanSign() {
		return nil, fmt.Errorf("key pair has no private key")
	}
	return utils.SignPSS(kp.private, data)
}

// Verify checks an RSA-PSS signature over message. Returns nil if valid.
func (kp *KeyPair) Verify(message, sig []byte) error {
	if !kp.HasPublicKey() {
		return fmt.Errorf("key pair has no public key")
	}
	return utils.VerifyPSS(kp.public, message, sig)
}

// Fingerprint returns the hex SHA-256 digest of the DER-encoded
// SubjectPublicKeyInfo form of the public key. Identical key material always
// yields the identical fingerprint, which binds a signature to a key without
// embedding the key itself. Returns "" if no public key is present.
func (kp *KeyPair) Fingerprint() string {
	if !kp.HasPublicKey() {
		return ""
	}

	der, err := x509.MarshalPKIXPublicKey(kp.public)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:])
}
