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

package digest

import (
	"context"
	"encoding/hex"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/streamhash/streamhash/pkg/hashing/digests"
	hashengines "github.com/streamhash/streamhash/pkg/hashing/engines"
	hashio "github.com/streamhash/streamhash/pkg/hashing/engines/io"
	"github.com/streamhash/streamhash/pkg/hashing/engines/memory"
	"github.com/streamhash/streamhash/pkg/logging"
	"github.com/streamhash/streamhash/pkg/tracing"
)

// BatchOptions controls FromPaths. The zero value hashes with the default
// engine, the default chunk size, blocking reads, and one job per CPU.
type BatchOptions struct {
	Engine    hashengines.Factory
	ChunkSize int
	// Async reads each file through the suspendable loop.
	Async bool
	// Jobs bounds the number of files hashed at once.
	Jobs   int
	Logger logging.Logger
}

// Result is the outcome for one path. Exactly one of Digest and Err is set.
type Result struct {
	Path   string
	Digest string
	Err    error
}

// FromPaths hashes every path as an independent computation, at most
// opts.Jobs at a time. Per-file failures are reported in the matching
// Result and do not stop the batch. Results are in the order of paths.
//
// The returned error is non-nil only when ctx ends before every path was
// attempted; paths not yet started then carry ctx.Err().
func FromPaths(ctx context.Context, paths []string, opts BatchOptions) ([]Result, error) {
	newEngine := opts.Engine
	if newEngine == nil {
		newEngine = memory.NewSHA256
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	logger := logging.EnsureLogger(opts.Logger)

	results := make([]Result, len(paths))
	for i, p := range paths {
		results[i].Path = p
	}

	err := tracing.Run(ctx, "digest.FromPaths", map[string]any{"files": len(paths), "jobs": jobs}, func(ctx context.Context) error {
		var g errgroup.Group
		g.SetLimit(jobs)

		scheduled := 0
		for i := range paths {
			if ctx.Err() != nil {
				break
			}
			scheduled++
			g.Go(func() error {
				r := &results[i]
				r.Digest, r.Err = hashOne(ctx, r.Path, newEngine, opts.ChunkSize, opts.Async)
				if r.Err != nil {
					logger.WithField("path", r.Path).Debug("hash failed: %v", r.Err)
				} else {
					logger.WithField("path", r.Path).Debug("hashed %s", r.Digest)
				}
				return nil
			})
		}
		_ = g.Wait()
		if scheduled < len(paths) {
			return ctx.Err()
		}
		return nil
	})

	if err != nil {
		for i := range results {
			if results[i].Digest == "" && results[i].Err == nil {
				results[i].Err = err
			}
		}
	}
	return results, err
}

func hashOne(ctx context.Context, path string, newEngine hashengines.Factory, chunkSize int, async bool) (string, error) {
	h, err := hashio.NewFileHasher(path, newEngine, chunkSize)
	if err != nil {
		return "", err
	}
	if async {
		return h.ComputeAsync(ctx)
	}
	return h.Compute()
}

// Root combines the digests of a finished batch, in order, into a single
// digest computed with newEngine, which should be the engine the batch used.
// It fails if any result carries an error.
func Root(results []Result, newEngine hashengines.Factory) (string, error) {
	if newEngine == nil {
		newEngine = memory.NewSHA256
	}
	name := newEngine().DigestName()

	list := make([]digests.Digest, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			return "", fmt.Errorf("%s: %w", r.Path, r.Err)
		}
		raw, err := hex.DecodeString(r.Digest)
		if err != nil {
			return "", fmt.Errorf("%s: invalid digest: %w", r.Path, err)
		}
		list = append(list, digests.NewDigest(name, raw))
	}
	return memory.ComputeRootDigest(newEngine, list).Hex(), nil
}
