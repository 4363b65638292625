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

package options

import (
	"github.com/spf13/cobra"
)

// CheckOptions are the flags of the check command.
type CheckOptions struct {
	HashingFlags

	BaseDir       string
	IgnoreMissing bool
	// Quiet suppresses OK lines.
	Quiet bool
	// Status suppresses all output; only the exit code reports the result.
	Status bool
}

var _ FlagAdder = (*CheckOptions)(nil)

func (o *CheckOptions) AddFlags(cmd *cobra.Command) {
	o.HashingFlags.AddFlags(cmd)

	cmd.Flags().StringVar(&o.BaseDir, "base-dir", "",
		"resolve relative paths in the checksum list against this directory")
	_ = cmd.MarkFlagDirname("base-dir")
	cmd.Flags().BoolVar(&o.IgnoreMissing, "ignore-missing", false,
		"don't fail or report status for missing files")
	cmd.Flags().BoolVar(&o.Quiet, "quiet", false,
		"don't print OK for each successfully verified file")
	cmd.Flags().BoolVar(&o.Status, "status", false,
		"don't output anything, the exit code shows success")
}

// FileOptions are the flags of the file command.
type FileOptions struct {
	HashingFlags
	PathFlags

	// Tag selects the BSD output format.
	Tag bool
	// Root prints one digest over all files instead of a line per file.
	Root bool
}

var _ FlagAdder = (*FileOptions)(nil)

func (o *FileOptions) AddFlags(cmd *cobra.Command) {
	AddAllFlags(cmd, &o.HashingFlags, &o.PathFlags)
	cmd.Flags().BoolVar(&o.Tag, "tag", false,
		"write BSD-style checksum lines")
	cmd.Flags().BoolVar(&o.Root, "root", false,
		"print a single digest over the digests of all files, in argument order")
}
