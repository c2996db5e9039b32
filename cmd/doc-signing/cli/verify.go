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
	"github.com/signedocs/doc-signing/pkg/tracing"
	"github.com/signedocs/doc-signing/pkg/verify"
)

// Verify builds the verify subcommand.
func Verify() *cobra.Command {
	inputFlags := &options.SignatureInputFlags{}
	var publicKeyPath string

	cmd := &cobra.Command{
		Use:   "verify [OPTIONS] DOCUMENT_PATH...",
		Short: "Verify signed documents.",
		Long: `Verify signed documents.

    Each DOCUMENT_PATH may name a signed document (whose sidecar is looked
    up at DOCUMENT_PATH.sig) or the .sig sidecar itself. The public key is
    loaded from --public-key.

    The outcome per document is one of:
      valid         signature verified, content unmodified
      tampered      content changed after signing
      invalid       signature did not verify, or inputs missing/corrupt
      key_mismatch  no usable public key available`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputFlags.SignaturePath != "" && len(args) > 1 {
				return fmt.Errorf("--signature can only be used with a single document")
			}

			obs := ro.NewObservability()

			ctx, cancel := context.WithTimeout(cmd.Context(), ro.Timeout)
			defer cancel()

			verifier, err := verify.NewSignatureVerifier(verify.VerifierConfig{
				PublicKeyPath: publicKeyPath,
				Logger:        obs.Logger,
			})
			if err != nil {
				return err
			}

			var results []signature.Result
			err = tracing.Run(ctx, "doc-signing.verify", map[string]interface{}{
				"documents": len(args),
			}, func(context.Context) error {
				if len(args) == 1 && inputFlags.SignaturePath != "" {
					results = []signature.Result{verifier.VerifyDocument(signature.VerifyRequest{
						SignedDocumentPath:   inputFlags.SignaturePath,
						OriginalDocumentPath: args[0],
					})}
					return nil
				}
				results = verifier.VerifyBatch(args)
				return nil
			})
			if err != nil {
				return err
			}

			notValid := 0
			for i, result := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s - %s\n", args[i], result.Status, result.Message)
				if result.Metadata != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "  signer: %s <%s>\n",
						result.Metadata.SignerName, result.Metadata.SignerEmail)
					fmt.Fprintf(cmd.OutOrStdout(), "  date:   %s\n",
						result.Metadata.SignatureDate.Format("2006-01-02 15:04:05 MST"))
				}
				if result.Status != signature.StatusValid {
					notValid++
				}
			}
			if notValid > 0 {
				return fmt.Errorf("%d of %d signatures did not verify", notValid, len(args))
			}
			return nil
		},
	}

	options.AddAllFlags(cmd, inputFlags)
	cmd.Flags().StringVar(&publicKeyPath, "public-key", options.DefaultPublicKeyPath,
		"Path to the PEM public key file.")
	_ = cmd.MarkFlagFilename("public-key", "pem")

	return cmd
}
