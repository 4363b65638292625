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

// Package options defines the flag groups of the streamhash CLI.
package options

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/streamhash/streamhash/pkg/logging"
)

// RootOptions are the persistent flags shared by every subcommand.
type RootOptions struct {
	// OutputFile receives digests and reports instead of stdout.
	OutputFile string
	LogLevel   string
	LogFormat  string
	// Timeout bounds a whole command, including every file it hashes.
	Timeout time.Duration

	// LogOutput defaults to os.Stderr. Tests replace it.
	LogOutput io.Writer
}

// DefaultTimeout is the --timeout default.
const DefaultTimeout = 3 * time.Minute

var (
	ValidLogLevels  = []string{"debug", "info", "warn", "error", "silent"}
	ValidLogFormats = []string{"text", "json"}
)

var _ FlagAdder = (*RootOptions)(nil)

func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.OutputFile, "output-file", "",
		"write digests and reports to a file instead of stdout")
	_ = cmd.MarkPersistentFlagFilename("output-file")

	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "info",
		"set the minimum log level (debug, info, warn, error, silent)")
	_ = cmd.RegisterFlagCompletionFunc("log-level", fixedCompletion(ValidLogLevels))

	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", "text",
		"set the log output format (text, json)")
	_ = cmd.RegisterFlagCompletionFunc("log-format", fixedCompletion(ValidLogFormats))

	cmd.PersistentFlags().DurationVarP(&o.Timeout, "timeout", "t", DefaultTimeout,
		"timeout for commands")
}

// NewLogger builds the logger selected by --log-level and --log-format.
func (o *RootOptions) NewLogger() (logging.Logger, error) {
	out := o.LogOutput
	if out == nil {
		out = os.Stderr
	}
	return logging.FromFlags(o.LogLevel, o.LogFormat, out)
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
