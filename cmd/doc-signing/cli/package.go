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
	"github.com/signedocs/doc-signing/pkg/signing"
)

// Package builds the package subcommand.
func Package() *cobra.Command {
	inputFlags := &options.SignatureInputFlags{}
	var outputPath string

	cmd := &cobra.Command{
		Use:   "package [OPTIONS] DOCUMENT_PATH",
		Short: "Bundle a signed document and its signature into one archive.",
		Long: `Bundle a signed document and its signature into one archive.

    Creates a zip archive containing DOCUMENT_PATH and its signature
    sidecar, for handing both to a recipient as a single file. The document
    must already be signed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obs := ro.NewObservability()

			archivePath, err := signing.CreateSignedPackage(args[0], inputFlags.SignaturePath, outputPath)
			if err != nil {
				return err
			}

			obs.Logger.Info("packaged %s", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Signed package: %s\n", archivePath)
			return nil
		},
	}

	options.AddAllFlags(cmd, inputFlags)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Location of the archive to create. Defaults to <document>.signed.zip")
	_ = cmd.MarkFlagFilename("output", "zip")

	return cmd
}
