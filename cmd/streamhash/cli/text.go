// Copyright 2025 The Sigstore Authors.
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

	"github.com/streamhash/streamhash/pkg/digest"
	"github.com/streamhash/streamhash/pkg/tracing"
	"github.com/streamhash/streamhash/pkg/utils"
)

// Text creates the text subcommand.
func Text() *cobra.Command {
	var perRune bool

	cmd := &cobra.Command{
		Use:   "text [OPTIONS] [TEXT...]",
		Short: "Print the SHA-256 digest of each argument.",
		Long: `Print the SHA-256 digest of each argument, one per line.

Arguments are hashed as their UTF-8 bytes. With --runes every character is
hashed on its own. Without arguments, standard input is streamed and reported
as "-".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				ctx, cancel := withTimeout(cmd.Context())
				defer cancel()
				return tracing.Run(ctx, "HashStdin", nil, func(ctx context.Context) error {
					hex, err := digest.FromReaderAsync(ctx, cmd.InOrStdin()).Await(ctx)
					if err != nil {
						return fmt.Errorf("reading standard input: %w", err)
					}
					_, err = fmt.Fprintln(out, utils.FormatChecksumLine(hex, utils.StdinPath))
					return err
				})
			}

			for _, arg := range args {
				if !perRune {
					fmt.Fprintln(out, digest.Of(arg))
					continue
				}
				for _, r := range arg {
					fmt.Fprintf(out, "%s  %c\n", digest.OfRune(r), r)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&perRune, "runes", false, "hash every character separately")
	return cmd
}
