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

// Package hashengines defines the capability every SHA-256 engine provides.
//
// An engine accepts byte chunks through Update and produces a digest once
// through Finish. Engines are created fresh for every computation by a
// Factory and are never shared between computations.
package hashengines

import (
	"errors"

	"github.com/streamhash/streamhash/pkg/hashing/digests"
)

// ErrFinished is the panic value raised when an engine is used after Finish.
var ErrFinished = errors.New("hash engine already finished")

// Engine is the capability a streaming digest computation drives.
//
// Update and Finish never fail: they are in-memory state transitions. Finish
// consumes the engine; calling Update or Finish again afterwards is a
// programming error and panics with ErrFinished.
type Engine interface {
	// Update appends chunk to the data being hashed. It may be called any
	// number of times, including zero.
	Update(chunk []byte)

	// Finish applies the padding rule to any buffered partial block and
	// returns the final digest. It may be called at most once.
	Finish() digests.Digest

	// DigestName returns the canonical engine name. It becomes the algorithm
	// of the Digest returned by Finish.
	DigestName() string

	// DigestSize returns the byte length of digests produced by Finish.
	DigestSize() int
}

// Factory creates a fresh Engine. A computation calls its factory exactly
// once, so the resulting engine state is never aliased.
type Factory func() Engine
