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

// Package digests provides the value type produced by a finished hash engine.
//
// A Digest carries the name of the engine that produced it and the raw digest
// bytes. It has no identity beyond those bytes and cannot be mutated once built.
package digests

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// SHA256Size is the length in bytes of every digest produced in this module.
const SHA256Size = 32

// Digest is a finished SHA-256 digest.
//
// Fields are unexported and the value slice is copied on the way in and on
// the way out, so a Digest can be shared freely between goroutines.
type Digest struct {
	algorithm string
	value     []byte
}

// NewDigest builds a Digest from an engine name and the raw digest bytes.
// The value slice is copied.
func NewDigest(algorithm string, value []byte) Digest {
	return Digest{
		algorithm: algorithm,
		value:     bytes.Clone(value),
	}
}

// FromArray builds a Digest from a fixed-size SHA-256 sum.
func FromArray(algorithm string, sum [SHA256Size]byte) Digest {
	return NewDigest(algorithm, sum[:])
}

// Algorithm returns the name of the engine that produced the digest,
// for example "sha256" or "sha256-simd".
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	return bytes.Clone(d.value)
}

// Hex returns the digest as a lowercase hexadecimal string.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

// Size returns the digest length in bytes.
func (d Digest) Size() int {
	return len(d.value)
}

// String renders the digest as "algorithm:hex".
func (d Digest) String() string {
	return fmt.Sprintf("%s:%s", d.algorithm, d.Hex())
}

// Equal reports whether both digests were produced by the same engine and
// hold identical bytes.
func (d Digest) Equal(other Digest) bool {
	return d.algorithm == other.algorithm && bytes.Equal(d.value, other.value)
}

// SameValue reports whether both digests hold identical bytes, regardless of
// which engine produced them. Two engines computing SHA-256 over the same
// input must always satisfy SameValue.
func (d Digest) SameValue(other Digest) bool {
	return bytes.Equal(d.value, other.value)
}
