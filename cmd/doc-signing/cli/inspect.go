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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signedocs/doc-signing/pkg/verify"
)

// Inspect builds the inspect subcommand.
func Inspect() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect DOCUMENT_PATH",
		Short: "Show signature information for a document without verifying it.",
		Long: `Show signature information for a document without verifying it.

    Reads the metadata block of the sidecar at DOCUMENT_PATH.sig and prints
    it as JSON. The output is unauthenticated: it reflects what the sidecar
    claims, not whether the signature holds. Use 'verify' for that.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := verify.GetSignatureInfo(args[0])

			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("encode signature info: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	return cmd
}
