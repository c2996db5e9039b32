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

package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/sigstore/sigstore/pkg/cryptoutils"
	"github.com/youmark/pkcs8"

	"github.com/signedocs/doc-signing/pkg/utils"
)

// Sentinel errors for the key lifecycle. Callers classify failures with
// errors.Is.
var (
	// ErrInvalidKeySize is returned for key sizes outside {2048, 3072, 4096}.
	ErrInvalidKeySize = errors.New("key size must be 2048, 3072, or 4096 bits")
	// ErrKeyNotFound is returned when a key file does not exist.
	ErrKeyNotFound = errors.New("key file not found")
	// ErrKeyDecryptFailure is returned when a private key cannot be
	// decrypted or parsed (wrong passphrase or malformed key material).
	ErrKeyDecryptFailure = errors.New("failed to decrypt or parse private key")
	// ErrKeyParseFailure is returned when a public key cannot be parsed.
	ErrKeyParseFailure = errors.New("failed to parse public key")
)

// DefaultKeySize is the modulus size used when callers do not pick one.
const DefaultKeySize = 2048

// encryptedPKCS8PEMType is the PEM block type for passphrase-encrypted
// PKCS8 keys (RFC 5958 EncryptedPrivateKeyInfo).
const encryptedPKCS8PEMType = "ENCRYPTED PRIVATE KEY"

// validKeySize reports whether bits is an allowed RSA modulus size.
func validKeySize(bits int) bool {
	return bits == 2048 || bits == 3072 || bits == 4096
}

// GenerateKeyPair produces a fresh RSA key pair with the given modulus size
// and public exponent 65537. Fails with ErrInvalidKeySize for sizes outside
// {2048, 3072, 4096}.
func GenerateKeyPair(bits int) (*KeyPair, error) {
	if !validKeySize(bits) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeySize, bits)
	}

	// crypto/rsa always uses public exponent 65537.
	private, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("generate RSA key pair: %w", err)
	}

	return &KeyPair{private: private, public: &private.PublicKey}, nil
}

// SavePrivateKey serializes the private key as PKCS8-PEM at path, creating
// parent directories as needed. If password is non-empty, the key is
// encrypted with PBES2 (AES-256-CBC, PBKDF2/SHA-256); otherwise it is stored
// unencrypted. An existing file at path is replaced.
func (kp *KeyPair) SavePrivateKey(path, password string) error {
	if !kp.CanSign() {
		return fmt.Errorf("key pair has no private key to save")
	}

	var pemBytes []byte
	if password != "" {
		der, err := pkcs8.MarshalPrivateKey(kp.private, []byte(password), pkcs8.DefaultOpts)
		if err != nil {
			return fmt.Errorf("encrypt private key: %w", err)
		}
		pemBytes = pem.EncodeToMemory(&pem.Block{Type: encryptedPKCS8PEMType, Bytes: der})
	} else {
		var err error
		pemBytes, err = cryptoutils.MarshalPrivateKeyToPEM(kp.private)
		if err != nil {
			return fmt.Errorf("marshal private key: %w", err)
		}
	}

	if err := utils.WriteFileAtomic(path, pemBytes, 0o600); err != nil {
		return fmt.Errorf("save private key: %w", err)
	}
	return nil
}

// SavePublicKey serializes the public key as PEM SubjectPublicKeyInfo at
// path, creating parent directories as needed.
func (kp *KeyPair) SavePublicKey(path string) error {
	if !kp.HasPublicKey() {
		return fmt.Errorf("key pair has no public key to save")
	}

	pemBytes, err := cryptoutils.MarshalPublicKeyToPEM(kp.public)
	if err != nil {
		return fmt.Errorf("marshal public key: %w", err)
	}

	if err := utils.WriteFileAtomic(path, pemBytes, 0o644); err != nil {
		return fmt.Errorf("save public key: %w", err)
	}
	return nil
}

// LoadPrivateKey loads an RSA private key from a PEM file and derives its
// public key. Fails with ErrKeyNotFound if path does not exist and
// ErrKeyDecryptFailure if the passphrase is wrong or the key is malformed.
func LoadPrivateKey(path, password string) (*KeyPair, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}
		return nil, fmt.Errorf("read private key file: %w", err)
	}

	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block in %s", ErrKeyDecryptFailure, path)
	}

	var key interface{}
	if block.Type == encryptedPKCS8PEMType {
		if password == "" {
			return nil, fmt.Errorf("%w: key is encrypted and no passphrase was supplied", ErrKeyDecryptFailure)
		}
		key, err = pkcs8.ParsePKCS8PrivateKey(block.Bytes, []byte(password))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeyDecryptFailure, err)
		}
	} else {
		var passFunc cryptoutils.PassFunc
		if password != "" {
			passFunc = func(_ bool) ([]byte, error) {
				return []byte(password), nil
			}
		}
		key, err = cryptoutils.UnmarshalPEMToPrivateKey(pemBytes, passFunc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeyDecryptFailure, err)
		}
	}

	private, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not an RSA private key", ErrKeyDecryptFailure, key)
	}

	return &KeyPair{private: private, public: &private.PublicKey}, nil
}

// LoadPublicKey loads an RSA public key from a PEM file. The returned pair
// has no private half. Fails with ErrKeyNotFound or ErrKeyParseFailure.
func LoadPublicKey(path string) (*KeyPair, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}
		return nil, fmt.Errorf("read public key file: %w", err)
	}

	key, err := cryptoutils.UnmarshalPEMToPublicKey(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyParseFailure, err)
	}

	public, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not an RSA public key", ErrKeyParseFailure, key)
	}

	return &KeyPair{public: public}, nil
}

// KeyFilesExist reports whether both key files exist. Used by callers to
// decide whether to bootstrap a fresh pair.
func KeyFilesExist(privatePath, publicPath string) bool {
	return utils.FileExists(privatePath) && utils.FileExists(publicPath)
}

// GenerateAndSaveKeys generates a fresh pair and persists both halves.
// If the private key save succeeds but the public key save fails, the
// private key file is left in place; callers that need stronger atomicity
// must clean up themselves.
func GenerateAndSaveKeys(privatePath, publicPath string, bits int, password string) (*KeyPair, error) {
	kp, err := GenerateKeyPair(bits)
	if err != nil {
		return nil, err
	}
	if err := kp.SavePrivateKey(privatePath, password); err != nil {
		return nil, err
	}
	if err := kp.SavePublicKey(publicPath); err != nil {
		return nil, err
	}
	return kp, nil
}

// EnsureKeys loads the pair at the given paths, generating and persisting a
// fresh one first when either file is missing. This is the explicit
// bootstrap callers invoke before constructing a signer; nothing in this
// package generates keys as a hidden side effect.
func EnsureKeys(privatePath, publicPath string, bits int, password string) (*KeyPair, error) {
	if !KeyFilesExist(privatePath, publicPath) {
		return GenerateAndSaveKeys(privatePath, publicPath, bits, password)
	}
	return LoadPrivateKey(privatePath, password)
}
