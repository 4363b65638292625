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

// Package cli implements the streamhash command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	cobracompletefig "github.com/withfig/autocomplete-tools/integrations/cobra"
	"sigs.k8s.io/release-utils/version"

	"github.com/streamhash/streamhash/cmd/streamhash/cli/options"
)

var (
	ro = &options.RootOptions{}
)

func New() *cobra.Command {
	var out *os.File

	cmd := &cobra.Command{
		Use:               "streamhash",
		Short:             "Streaming SHA-256 digests for text, files and checksum lists.",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := ro.NewLogger(); err != nil {
				return err
			}

			if ro.OutputFile != "" {
				var err error
				out, err = os.Create(ro.OutputFile)
				if err != nil {
					return fmt.Errorf("error creating output file %s: %w", ro.OutputFile, err)
				}
				cmd.SetOut(out)
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if out == nil {
				return nil
			}
			err := out.Close()
			out = nil
			return err
		},
	}
	ro.AddFlags(cmd)

	cmd.AddCommand(Text())
	cmd.AddCommand(File())
	cmd.AddCommand(Check())
	cmd.AddCommand(Engines())
	cmd.AddCommand(version.WithFont("starwars"))
	cmd.AddCommand(cobracompletefig.CreateCompletionSpecCommand())
	return cmd
}

// withTimeout applies --timeout to a command's context.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ro.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, ro.Timeout)
}

// exitError carries a process exit code other than the default failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }
