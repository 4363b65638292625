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
	simd "github.com/minio/sha256-simd"

	"github.com/streamhash/streamhash/pkg/hashing/digests"
	hashengines "github.com/streamhash/streamhash/pkg/hashing/engines"
)

// SIMDName is the registry name of the alternate engine.
const SIMDName = "sha256-simd"

func init() {
	hashengines.MustRegister(SIMDName, NewSIMD)
}

// NewSIMDEngine returns the alternate engine, backed by
// github.com/minio/sha256-simd. It uses SHA extensions or AVX2 when the CPU
// has them and falls back to the generic block function otherwise.
func NewSIMDEngine() *GenericEngine {
	return NewGenericEngine(SIMDName, simd.Size, simd.New())
}

// NewSIMD is NewSIMDEngine as a hashengines.Factory.
func NewSIMD() hashengines.Engine {
	return NewSIMDEngine()
}

// SumSIMD hashes data in one shot with the alternate engine.
func SumSIMD(data []byte) digests.Digest {
	return digests.FromArray(SIMDName, simd.Sum256(data))
}
