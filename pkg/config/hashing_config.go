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

package config

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/streamhash/streamhash/pkg/digest"
	hashengines "github.com/streamhash/streamhash/pkg/hashing/engines"
	hashio "github.com/streamhash/streamhash/pkg/hashing/engines/io"
	"github.com/streamhash/streamhash/pkg/hashing/engines/memory"
	"github.com/streamhash/streamhash/pkg/logging"
)

// EngineEnvVar overrides the default engine name.
const EngineEnvVar = "STREAMHASH_ENGINE"

// HashingConfig holds everything that decides how a set of files is hashed:
// the engine, the read buffer, the execution mode, and which files a
// directory argument expands to.
type HashingConfig struct {
	// Registered engine name ("sha256", "sha256-simd")
	engine string

	// Read buffer size in bytes
	chunkSize int

	// Use the suspendable read loop
	async bool

	// Files hashed at once
	jobs int

	// Expand directory arguments into the files below them
	recursive bool

	// Follow symlinks to regular files while expanding directories
	allowSymlinks bool

	// Paths skipped while expanding directories
	ignoredPaths []string

	logger logging.Logger
}

// gitRelatedPaths are skipped by SetIgnoredPaths when asked to.
var gitRelatedPaths = []string{
	".git",
	".gitignore",
	".gitattributes",
	".github",
	".gitmodules",
}

// NewHashingConfig returns the defaults: the engine named by
// $STREAMHASH_ENGINE or sha256, a 1 KiB buffer, blocking reads, one job per
// CPU, and no directory expansion.
func NewHashingConfig() *HashingConfig {
	engine := strings.TrimSpace(os.Getenv(EngineEnvVar))
	if engine == "" {
		engine = memory.SHA256Name
	}

	return &HashingConfig{
		engine:    engine,
		chunkSize: hashio.DefaultChunkSize,
		jobs:      runtime.NumCPU(),
	}
}

// SetEngine selects the engine by registered name.
func (c *HashingConfig) SetEngine(name string) *HashingConfig {
	c.engine = name
	return c
}

// SetChunkSize sets the read buffer size. Every read is at most this large.
func (c *HashingConfig) SetChunkSize(size int) *HashingConfig {
	c.chunkSize = size
	return c
}

// SetAsync selects the suspendable read loop.
func (c *HashingConfig) SetAsync(async bool) *HashingConfig {
	c.async = async
	return c
}

// SetJobs bounds how many files are hashed at once.
func (c *HashingConfig) SetJobs(jobs int) *HashingConfig {
	c.jobs = jobs
	return c
}

// SetRecursive makes directory arguments expand to the regular files below
// them, sorted by path.
func (c *HashingConfig) SetRecursive(recursive, allowSymlinks bool) *HashingConfig {
	c.recursive = recursive
	c.allowSymlinks = allowSymlinks
	return c
}

// SetIgnoredPaths sets the paths skipped during directory expansion. Relative
// entries are matched against the path relative to the directory argument.
func (c *HashingConfig) SetIgnoredPaths(paths []string, ignoreGitPaths bool) *HashingConfig {
	c.ignoredPaths = append([]string(nil), paths...)
	if ignoreGitPaths {
		c.ignoredPaths = append(c.ignoredPaths, gitRelatedPaths...)
	}
	return c
}

func (c *HashingConfig) SetLogger(l logging.Logger) *HashingConfig {
	c.logger = l
	return c
}

func (c *HashingConfig) Engine() string { return c.engine }
func (c *HashingConfig) ChunkSize() int { return c.chunkSize }
func (c *HashingConfig) Async() bool    { return c.async }
func (c *HashingConfig) Jobs() int      { return c.jobs }

// Validate checks the configuration without touching the filesystem.
func (c *HashingConfig) Validate() error {
	if !hashengines.IsSupported(c.engine) {
		return fmt.Errorf("unsupported hash engine %q (supported: %s)", c.engine, strings.Join(hashengines.Supported(), ", "))
	}
	if c.chunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.chunkSize)
	}
	if c.jobs <= 0 {
		return fmt.Errorf("jobs must be positive, got %d", c.jobs)
	}
	return nil
}

// NewEngineFactory resolves the configured engine name.
func (c *HashingConfig) NewEngineFactory() (hashengines.Factory, error) {
	return hashengines.Lookup(c.engine)
}

// ExpandPaths returns the files to hash for the given arguments. Without
// recursion the arguments are returned unchanged, so a directory argument
// fails when it is read.
func (c *HashingConfig) ExpandPaths(paths []string) ([]string, error) {
	if !c.recursive {
		return paths, nil
	}

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := c.walkDirectory(p)
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %s: %w", p, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

// Hash validates the configuration, expands paths, and hashes every file.
// Per-file failures are reported in the results.
func (c *HashingConfig) Hash(ctx context.Context, paths []string) ([]digest.Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	newEngine, err := c.NewEngineFactory()
	if err != nil {
		return nil, err
	}
	files, err := c.ExpandPaths(paths)
	if err != nil {
		return nil, err
	}

	logger := logging.EnsureLogger(c.logger)
	logger.WithFields(map[string]any{
		"engine": c.engine,
		"async":  c.async,
		"jobs":   c.jobs,
	}).Debug("hashing %d file(s)", len(files))

	return digest.FromPaths(ctx, files, digest.BatchOptions{
		Engine:    newEngine,
		ChunkSize: c.chunkSize,
		Async:     c.async,
		Jobs:      c.jobs,
		Logger:    logger,
	})
}

func (c *HashingConfig) walkDirectory(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if c.shouldIgnorePath(path, root) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if !c.allowSymlinks {
				return nil
			}
			target, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to resolve symlink %s: %w", path, err)
			}
			if !target.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (c *HashingConfig) shouldIgnorePath(path, root string) bool {
	relPath, err := filepath.Rel(root, path)
	if err != nil || relPath == "." {
		return false
	}

	for _, ignored := range c.ignoredPaths {
		compareWith := relPath
		if filepath.IsAbs(ignored) {
			compareWith = path
		}
		if compareWith == ignored || strings.HasPrefix(compareWith, ignored+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (c *HashingConfig) clone() *HashingConfig {
	cp := *c
	cp.ignoredPaths = slices.Clone(c.ignoredPaths)
	return &cp
}
