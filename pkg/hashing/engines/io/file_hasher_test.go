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
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/streamhash/streamhash/pkg/hashing/engines/memory"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.bin")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestNewFileHasher_Validation(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		chunkSize int
		nilEngine bool
		wantErr   bool
	}{
		{"valid", "file", 0, false, false},
		{"negative chunk", "file", -1, false, true},
		{"empty path", "", 0, false, true},
		{"nil factory", "file", 0, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := memory.NewSHA256
			if tt.nilEngine {
				factory = nil
			}
			h, err := NewFileHasher(tt.path, factory, tt.chunkSize)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFileHasher() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && h.chunkSize != DefaultChunkSize {
				t.Errorf("chunkSize = %d, want %d", h.chunkSize, DefaultChunkSize)
			}
		})
	}
}

func TestFileHasher_Compute(t *testing.T) {
	data := parityBytes()
	path := writeTempFile(t, data)
	want := oneShotHex(data)

	for _, chunk := range []int{1, 100, 0} {
		for _, f := range engineFactories {
			h, err := NewFileHasher(path, f.factory, chunk)
			if err != nil {
				t.Fatalf("NewFileHasher() error = %v", err)
			}

			got, err := h.Compute()
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if got != want {
				t.Errorf("chunk %d %s: Compute() = %q, want %q", chunk, f.name, got, want)
			}

			got, err = h.ComputeAsync(context.Background())
			if err != nil {
				t.Fatalf("ComputeAsync() error = %v", err)
			}
			if got != want {
				t.Errorf("chunk %d %s: ComputeAsync() = %q, want %q", chunk, f.name, got, want)
			}
		}
	}
}

func TestFileHasher_EmptyFile(t *testing.T) {
	h, err := NewFileHasher(writeTempFile(t, nil), memory.NewSHA256, 0)
	if err != nil {
		t.Fatalf("NewFileHasher() error = %v", err)
	}
	got, err := h.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got != emptyHex {
		t.Errorf("Compute() = %q, want %q", got, emptyHex)
	}
}

func TestFileHasher_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")
	h, err := NewFileHasher(path, memory.NewSHA256, 0)
	if err != nil {
		t.Fatalf("NewFileHasher() error = %v", err)
	}

	if _, err := h.Compute(); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Compute() error = %v, want fs.ErrNotExist", err)
	}
	if _, err := h.ComputeAsync(context.Background()); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ComputeAsync() error = %v, want fs.ErrNotExist", err)
	}
}

func TestFileHasher_ComputeAsyncCancelled(t *testing.T) {
	h, err := NewFileHasher(writeTempFile(t, []byte("hello")), memory.NewSHA256, 0)
	if err != nil {
		t.Fatalf("NewFileHasher() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.ComputeAsync(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("ComputeAsync() error = %v, want context.Canceled", err)
	}
}
