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
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signedocs/doc-signing/cmd/doc-signing/cli/options"
	"github.com/signedocs/doc-signing/pkg/signature"
	"github.com/signedocs/doc-signing/pkg/signing"
	"github.com/signedocs/doc-signing/pkg/tracing"
)

// Sign builds the sign subcommand.
func Sign() *cobra.Command {
	keyFlags := &options.KeyFlags{}
	signerFlags := &options.SignerFlags{}
	outputFlags := &options.SignatureOutputFlags{}
	var generateKeys bool

	cmd := &cobra.Command{
		Use:   "sign [OPTIONS] DOCUMENT_PATH...",
		Short: "Sign documents.",
		Long: `Sign documents.

    Signing the document at DOCUMENT_PATH produces a detached signature
    sidecar at DOCUMENT_PATH.sig (or at the --signature path for a single
    document). Supported document types are .txt, .pdf and .zip.

    The private key is loaded from --private-key; an encrypted key is
    unlocked with --password or $` + options.EnvPrefix + `_KEY_PASSWORD.
    Passing --generate-keys creates a fresh key pair first when the key
    files do not exist yet.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFlags.SignaturePath != "" && len(args) > 1 {
				return fmt.Errorf("--signature can only be used with a single document")
			}

			obs := ro.NewObservability()

			ctx, cancel := context.WithTimeout(cmd.Context(), ro.Timeout)
			defer cancel()

			signer, err := signing.NewDocumentSigner(signing.DocumentSignerConfig{
				PrivateKeyPath:      keyFlags.PrivateKeyPath,
				PublicKeyPath:       keyFlags.PublicKeyPath,
				Password:            keyFlags.EffectivePassword(),
				GenerateMissingKeys: generateKeys,
				KeySize:             keyFlags.KeySize,
				Logger:              obs.Logger,
			})
			if err != nil {
				return err
			}

			var results []signature.Result
			err = tracing.Run(ctx, "doc-signing.sign", map[string]interface{}{
				"documents": len(args),
			}, func(context.Context) error {
				if len(args) == 1 {
					results = []signature.Result{signer.SignDocument(signature.SignRequest{
						DocumentPath: args[0],
						SignerName:   signerFlags.SignerName,
						SignerEmail:  signerFlags.SignerEmail,
						OutputPath:   outputFlags.SignaturePath,
					})}
					return nil
				}
				results = signer.SignBatch(args, signerFlags.SignerName, signerFlags.SignerEmail)
				return nil
			})
			if err != nil {
				return err
			}

			failed := 0
			for i, result := range results {
				if result.Success {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: signed (%s)\n", args[i], result.SignedFilePath)
				} else {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", args[i], result.Message, result.Error)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents could not be signed", failed, len(args))
			}
			return nil
		},
	}

	options.AddAllFlags(cmd, keyFlags, signerFlags, outputFlags)
	cmd.Flags().BoolVar(&generateKeys, "generate-keys", false,
		"Generate a fresh key pair when the key files do not exist.")

	return cmd
}
