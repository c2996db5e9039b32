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

package options

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/signedocs/doc-signing/pkg/keys"
)

// FlagAdder is implemented by any flag group that can register itself to a cobra command.
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// DefaultPrivateKeyPath is where key commands look for the private key when
// no flag is given.
const DefaultPrivateKeyPath = "keys/private_key.pem"

// DefaultPublicKeyPath is where key commands look for the public key when no
// flag is given.
const DefaultPublicKeyPath = "keys/public_key.pem"

// passwordEnvVar is the environment variable consulted when --password is
// not set, so the passphrase does not end up in shell history.
const passwordEnvVar = EnvPrefix + "_KEY_PASSWORD"

// KeyFlags contains flags locating and unlocking the RSA key pair.
// They are shared by all commands that touch key material.
type KeyFlags struct {
	// PrivateKeyPath is the PEM file holding the private key.
	PrivateKeyPath string
	// PublicKeyPath is the PEM file holding the public key.
	PublicKeyPath string
	// Password unlocks (or, for keygen, protects) the private key.
	Password string
	// KeySize is the RSA modulus size for key generation.
	KeySize int
}

// AddFlags adds key flags to the cobra command.
func (o *KeyFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.PrivateKeyPath, "private-key", DefaultPrivateKeyPath, "Path to the PEM private key file.")
	_ = cmd.MarkFlagFilename("private-key", "pem")
	cmd.Flags().StringVar(&o.PublicKeyPath, "public-key", DefaultPublicKeyPath, "Path to the PEM public key file.")
	_ = cmd.MarkFlagFilename("public-key", "pem")
	cmd.Flags().StringVar(&o.Password, "password", "",
		"Passphrase for the private key. Falls back to $"+passwordEnvVar+".")
	cmd.Flags().IntVar(&o.KeySize, "key-size", keys.DefaultKeySize, "RSA key size in bits (2048, 3072 or 4096).")
}

// EffectivePassword returns the passphrase from the flag or, when unset,
// from the environment.
func (o *KeyFlags) EffectivePassword() string {
	if o.Password != "" {
		return o.Password
	}
	return os.Getenv(passwordEnvVar)
}

// SignerFlags identifies the signer on signing commands.
type SignerFlags struct {
	// SignerName is the signer's display name.
	SignerName string
	// SignerEmail is the signer's email address.
	SignerEmail string
}

// AddFlags adds signer identity flags to the cobra command. Both are required.
func (o *SignerFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.SignerName, "signer-name", "", "Name of the signer. [required]")
	_ = cmd.MarkFlagRequired("signer-name")
	cmd.Flags().StringVar(&o.SignerEmail, "signer-email", "", "Email of the signer. [required]")
	_ = cmd.MarkFlagRequired("signer-email")
}

// SignatureOutputFlags contains the signature path flag for signing commands.
type SignatureOutputFlags struct {
	// SignaturePath overrides the default sidecar location (<document>.sig).
	SignaturePath string
}

// AddFlags adds signature output flags for signing commands.
func (o *SignatureOutputFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.SignaturePath, "signature", "",
		"Location of the signature file to generate. Defaults to <document>.sig")
	_ = cmd.MarkFlagFilename("signature", "sig")
}

// SignatureInputFlags contains the signature path flag for commands that
// consume an existing signature.
type SignatureInputFlags struct {
	// SignaturePath names the sidecar to read.
	SignaturePath string
}

// AddFlags adds signature input flags to the cobra command.
func (o *SignatureInputFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.SignaturePath, "signature", "",
		"Location of the signature file. Defaults to <document>.sig")
	_ = cmd.MarkFlagFilename("signature", "sig")
}

// AddAllFlags is a helper function to register multiple flag groups at once.
func AddAllFlags(cmd *cobra.Command, flagGroups ...FlagAdder) {
	for _, fg := range flagGroups {
		fg.AddFlags(cmd)
	}
}
