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

// Package memory provides the in-memory SHA-256 engines: the default engine
// backed by crypto/sha256 and an alternate engine backed by
// github.com/minio/sha256-simd. Both produce bit-identical digests.
package memory

import (
	"hash"

	"github.com/streamhash/streamhash/pkg/hashing/digests"
	hashengines "github.com/streamhash/streamhash/pkg/hashing/engines"
)

var _ hashengines.Engine = (*GenericEngine)(nil)

// GenericEngine adapts a hash.Hash to the Engine contract.
//
// The wrapped hash is dropped by Finish, so a finished engine cannot leak
// state into a later computation.
type GenericEngine struct {
	name string
	size int
	h    hash.Hash
}

// NewGenericEngine wraps h under the given engine name and digest size.
func NewGenericEngine(name string, size int, h hash.Hash) *GenericEngine {
	return &GenericEngine{
		name: name,
		size: size,
		h:    h,
	}
}

// Update appends chunk to the hash state.
func (e *GenericEngine) Update(chunk []byte) {
	if e.h == nil {
		panic(hashengines.ErrFinished)
	}
	if len(chunk) > 0 {
		// hash.Hash.Write never returns an error.
		_, _ = e.h.Write(chunk)
	}
}

// Finish returns the digest and invalidates the engine.
func (e *GenericEngine) Finish() digests.Digest {
	if e.h == nil {
		panic(hashengines.ErrFinished)
	}
	sum := e.h.Sum(nil)
	e.h = nil
	return digests.NewDigest(e.name, sum)
}

// DigestName returns the engine name.
func (e *GenericEngine) DigestName() string {
	return e.name
}

// DigestSize returns the digest length in bytes.
func (e *GenericEngine) DigestSize() int {
	return e.size
}
