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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/streamhash/streamhash/cmd/streamhash/cli/options"
	"github.com/streamhash/streamhash/pkg/config"
	"github.com/streamhash/streamhash/pkg/tracing"
	"github.com/streamhash/streamhash/pkg/utils"
)

// Check creates the check subcommand.
func Check() *cobra.Command {
	o := &options.CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [OPTIONS] CHECKSUM_FILE...",
		Short: "Verify files against SHA-256 checksum lists.",
		Long: `Read SHA-256 checksum lists and verify every file they name.

Both the GNU format ("<hex>  <path>", as written by "file" and sha256sum) and
the BSD tag format ("SHA256 (<path>) = <hex>") are accepted. Use "-" to read
a list from standard input.

Exit status is 0 when every file matches and 1 otherwise.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ro.NewLogger()
			if err != nil {
				return err
			}
			if err := utils.ValidateMultiple("checksum file", args, utils.PathTypeFile); err != nil {
				return err
			}
			if o.BaseDir != "" {
				if err := utils.NewPathValidator("base directory", o.BaseDir, utils.PathTypeFolder).Validate(); err != nil {
					return err
				}
			}

			var entries []utils.ChecksumLine
			for _, name := range args {
				lines, err := readChecksumList(cmd.InOrStdin(), name)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				entries = append(entries, lines...)
			}
			logger.Debug("read %d checksum(s) from %d list(s)", len(entries), len(args))

			cc := config.NewCheckConfig().
				SetHashingConfig(o.ToHashingConfig(logger)).
				SetBaseDir(o.BaseDir).
				SetIgnoreMissing(o.IgnoreMissing)

			attrs := map[string]any{
				"streamhash.engine":         o.Engine,
				"streamhash.async":          o.Async,
				"streamhash.entries":        len(entries),
				"streamhash.ignore_missing": o.IgnoreMissing,
			}
			ctx, cancel := withTimeout(cmd.Context())
			defer cancel()

			return tracing.Run(ctx, "Check", attrs, func(ctx context.Context) error {
				report, err := cc.Check(ctx, entries)
				if report == nil {
					return err
				}
				if !o.Status {
					printReport(cmd.OutOrStdout(), report, o)
				}
				if errors.Is(err, config.ErrChecksumMismatch) {
					logger.Warn("%d of %d computed checksum(s) did NOT match", report.Failures(o.IgnoreMissing), len(report.Results))
					return &exitError{code: 1, err: err}
				}
				return err
			})
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func readChecksumList(stdin io.Reader, name string) ([]utils.ChecksumLine, error) {
	if name == utils.StdinPath {
		return utils.ParseChecksums(stdin)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck
	defer f.Close()
	return utils.ParseChecksums(f)
}

func printReport(w io.Writer, report *config.CheckReport, o *options.CheckOptions) {
	for _, res := range report.Results {
		switch {
		case res.Status == config.CheckOK && o.Quiet:
		case res.Status == config.CheckMissing && o.IgnoreMissing:
		default:
			fmt.Fprintf(w, "%s: %s\n", res.Entry.Path, res.Status)
		}
	}
}
