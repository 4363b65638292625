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

package memory

import (
	"crypto/sha256"

	"github.com/streamhash/streamhash/pkg/hashing/digests"
	hashengines "github.com/streamhash/streamhash/pkg/hashing/engines"
)

// SHA256Name is the registry name of the default engine.
const SHA256Name = "sha256"

func init() {
	hashengines.MustRegister(SHA256Name, NewSHA256)
}

// NewSHA256Engine returns the default engine, backed by crypto/sha256.
func NewSHA256Engine() *GenericEngine {
	return NewGenericEngine(SHA256Name, sha256.Size, sha256.New())
}

// NewSHA256 is NewSHA256Engine as a hashengines.Factory.
func NewSHA256() hashengines.Engine {
	return NewSHA256Engine()
}

// SumSHA256 hashes data in one shot with the default engine. Whole in-memory
// values skip the streaming loop.
func SumSHA256(data []byte) digests.Digest {
	return digests.FromArray(SHA256Name, sha256.Sum256(data))
}
