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

	"github.com/streamhash/streamhash/cmd/streamhash/cli/options"
	"github.com/streamhash/streamhash/pkg/digest"
	"github.com/streamhash/streamhash/pkg/tracing"
	"github.com/streamhash/streamhash/pkg/utils"
)

// File creates the file subcommand.
func File() *cobra.Command {
	o := &options.FileOptions{}

	cmd := &cobra.Command{
		Use:   "file [OPTIONS] PATH...",
		Short: "Print SHA-256 checksum lines for files.",
		Long: `Print a checksum line for every PATH, in the format read by "check".

Files are streamed through a fixed-size buffer, so their size does not
affect memory use. Up to --jobs files are hashed at once; output keeps the
order of the arguments. Files that cannot be read are reported on the log
and make the command exit with status 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ro.NewLogger()
			if err != nil {
				return err
			}
			hc := o.PathFlags.Apply(o.ToHashingConfig(logger))

			attrs := map[string]any{
				"streamhash.engine":     o.Engine,
				"streamhash.async":      o.Async,
				"streamhash.chunk_size": o.ChunkSize,
				"streamhash.jobs":       o.Jobs,
				"streamhash.recursive":  o.Recursive,
				"streamhash.paths":      args,
			}
			ctx, cancel := withTimeout(cmd.Context())
			defer cancel()

			return tracing.Run(ctx, "HashFiles", attrs, func(ctx context.Context) error {
				results, err := hc.Hash(ctx, args)
				if results == nil {
					return err
				}

				out := cmd.OutOrStdout()
				failed := 0
				for _, r := range results {
					if r.Err != nil {
						failed++
						logger.Error("%s: %v", r.Path, r.Err)
						continue
					}
					if o.Root {
						continue
					}
					line := utils.FormatChecksumLine(r.Digest, r.Path)
					if o.Tag {
						line = utils.FormatTaggedChecksumLine(r.Digest, r.Path)
					}
					fmt.Fprintln(out, line)
				}

				if err != nil {
					return err
				}
				if failed > 0 {
					return &exitError{code: 1, err: fmt.Errorf("%d of %d file(s) could not be hashed", failed, len(results))}
				}
				if o.Root {
					newEngine, err := hc.NewEngineFactory()
					if err != nil {
						return err
					}
					root, err := digest.Root(results, newEngine)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, root)
				}
				return nil
			})
		},
	}

	o.AddFlags(cmd)
	return cmd
}
