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
	"github.com/streamhash/streamhash/pkg/hashing/digests"
	hashengines "github.com/streamhash/streamhash/pkg/hashing/engines"
)

// ComputeRootDigest hashes the raw bytes of every digest, in order, with a
// fresh engine from newEngine. The result identifies the whole sequence:
// reordering, adding or dropping an entry changes it.
//
//	root := memory.ComputeRootDigest(memory.NewSHA256, []digests.Digest{d1, d2, d3})
func ComputeRootDigest(newEngine hashengines.Factory, digestList []digests.Digest) digests.Digest {
	engine := newEngine()
	for _, d := range digestList {
		engine.Update(d.Value())
	}
	return engine.Finish()
}
