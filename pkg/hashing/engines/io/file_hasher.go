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

package io

import (
	"context"
	"fmt"
	"os"

	hashengines "github.com/streamhash/streamhash/pkg/hashing/engines"
)

// FileHasher hashes one file by streaming it through a fresh engine.
//
// The file is read exactly once and never loaded whole into memory. Every
// Compute call opens the file, creates a new engine from the factory, and
// closes the file before returning.
type FileHasher struct {
	filePath  string
	newEngine hashengines.Factory
	chunkSize int
}

// NewFileHasher constructs a FileHasher.
//
//   - filePath: path to the file to hash
//   - newEngine: factory for the engine used on each computation
//   - chunkSize: read buffer size; 0 selects DefaultChunkSize
func NewFileHasher(filePath string, newEngine hashengines.Factory, chunkSize int) (*FileHasher, error) {
	if chunkSize < 0 {
		return nil, fmt.Errorf("chunk size must be non-negative, got %d", chunkSize)
	}
	if filePath == "" {
		return nil, fmt.Errorf("file path must be non-empty")
	}
	if newEngine == nil {
		return nil, fmt.Errorf("engine factory must not be nil")
	}
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}

	return &FileHasher{
		filePath:  filePath,
		newEngine: newEngine,
		chunkSize: chunkSize,
	}, nil
}

// Compute hashes the file on the calling goroutine and returns the hex digest.
//
// Errors from opening or reading the file are returned unchanged, so callers
// can match them with errors.Is(err, fs.ErrNotExist) and friends.
func (h *FileHasher) Compute() (string, error) {
	f, err := os.Open(h.filePath)
	if err != nil {
		return "", err
	}
	//nolint:errcheck
	defer f.Close()

	return CalcBuffer(NewReaderInput(f), h.newEngine(), make([]byte, h.chunkSize))
}

// ComputeAsync hashes the file with the suspendable loop. The file is closed
// on every exit path, including cancellation of ctx.
func (h *FileHasher) ComputeAsync(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(h.filePath)
	if err != nil {
		return "", err
	}
	//nolint:errcheck
	defer f.Close()

	return CalcAsyncBuffer(ctx, NewAsyncReaderInput(f), h.newEngine(), make([]byte, 0, h.chunkSize))
}
