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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signedocs/doc-signing/cmd/doc-signing/cli/options"
	"github.com/signedocs/doc-signing/pkg/keys"
)

// Keygen builds the keygen subcommand.
func Keygen() *cobra.Command {
	keyFlags := &options.KeyFlags{}
	var force bool

	cmd := &cobra.Command{
		Use:   "keygen [OPTIONS]",
		Short: "Generate an RSA signing key pair.",
		Long: `Generate an RSA signing key pair.

    Writes the private key (PKCS8 PEM, passphrase-encrypted when --password
    or $` + options.EnvPrefix + `_KEY_PASSWORD is set) and the public key
    (SubjectPublicKeyInfo PEM) to the configured paths. Existing key files
    are preserved unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			obs := ro.NewObservability()

			if keys.KeyFilesExist(keyFlags.PrivateKeyPath, keyFlags.PublicKeyPath) && !force {
				return fmt.Errorf("key files already exist (use --force to overwrite)")
			}

			kp, err := keys.GenerateAndSaveKeys(keyFlags.PrivateKeyPath, keyFlags.PublicKeyPath,
				keyFlags.KeySize, keyFlags.EffectivePassword())
			if err != nil {
				return err
			}

			obs.Logger.Info("generated %d-bit RSA key pair", kp.Size())
			fmt.Fprintf(cmd.OutOrStdout(), "Private key: %s\n", keyFlags.PrivateKeyPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Public key:  %s\n", keyFlags.PublicKeyPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", kp.Fingerprint())
			return nil
		},
	}

	options.AddAllFlags(cmd, keyFlags)
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing key files.")

	return cmd
}
