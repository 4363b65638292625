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

	"github.com/streamhash/streamhash/pkg/config"
	hashengines "github.com/streamhash/streamhash/pkg/hashing/engines"
	"github.com/streamhash/streamhash/pkg/logging"
)

// FlagAdder is implemented by every flag group.
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// AddAllFlags registers several flag groups on cmd.
func AddAllFlags(cmd *cobra.Command, flagGroups ...FlagAdder) {
	for _, fg := range flagGroups {
		fg.AddFlags(cmd)
	}
}

// HashingFlags select the engine and how files are read.
type HashingFlags struct {
	Engine    string
	ChunkSize int
	Async     bool
	Jobs      int
}

func (o *HashingFlags) AddFlags(cmd *cobra.Command) {
	defaults := config.NewHashingConfig()

	cmd.Flags().StringVar(&o.Engine, "engine", defaults.Engine(),
		"hash engine to use (env "+config.EngineEnvVar+")")
	_ = cmd.RegisterFlagCompletionFunc("engine", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return hashengines.Supported(), cobra.ShellCompDirectiveNoFileComp
	})

	cmd.Flags().IntVar(&o.ChunkSize, "chunk-size", defaults.ChunkSize(),
		"read buffer size in bytes")
	cmd.Flags().BoolVar(&o.Async, "async", false,
		"read files with the cancellable read loop")
	cmd.Flags().IntVarP(&o.Jobs, "jobs", "j", defaults.Jobs(),
		"number of files hashed at once")
}

// ToHashingConfig converts the flags. The result is not validated.
func (o *HashingFlags) ToHashingConfig(logger logging.Logger) *config.HashingConfig {
	return config.NewHashingConfig().
		SetEngine(o.Engine).
		SetChunkSize(o.ChunkSize).
		SetAsync(o.Async).
		SetJobs(o.Jobs).
		SetLogger(logger)
}

// PathFlags control how directory arguments are expanded.
type PathFlags struct {
	Recursive      bool
	AllowSymlinks  bool
	IgnorePaths    []string
	IgnoreGitPaths bool
}

func (o *PathFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.Recursive, "recursive", "r", false,
		"hash every file below directory arguments")
	cmd.Flags().BoolVar(&o.AllowSymlinks, "allow-symlinks", false,
		"follow symlinks to files while recursing")
	cmd.Flags().StringSliceVar(&o.IgnorePaths, "ignore-paths", nil,
		"paths to skip while recursing")
	cmd.Flags().BoolVar(&o.IgnoreGitPaths, "ignore-git-paths", true,
		"skip git-related files while recursing")
}

// Apply copies the flags onto c.
func (o *PathFlags) Apply(c *config.HashingConfig) *config.HashingConfig {
	return c.
		SetRecursive(o.Recursive, o.AllowSymlinks).
		SetIgnoredPaths(o.IgnorePaths, o.IgnoreGitPaths)
}
