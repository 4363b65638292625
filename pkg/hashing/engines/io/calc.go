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
	"io"

	hashengines "github.com/streamhash/streamhash/pkg/hashing/engines"
)

// DefaultChunkSize is the read buffer size used by Calc and CalcAsync. It
// bounds memory use regardless of input size.
const DefaultChunkSize = 1024

// Calc streams input into engine with a DefaultChunkSize buffer and returns
// the lowercase hex digest.
func Calc(input Input, engine hashengines.Engine) (string, error) {
	return CalcBuffer(input, engine, make([]byte, DefaultChunkSize))
}

// CalcBuffer is Calc with a caller-supplied read buffer. The buffer is
// overwritten in place on every read and only the prefix returned by ReadInto
// reaches the engine.
//
// The first read error aborts the loop and is returned unchanged; the engine
// is left unfinished and no partial digest is produced.
func CalcBuffer(input Input, engine hashengines.Engine, buf []byte) (string, error) {
	if len(buf) == 0 {
		return "", io.ErrShortBuffer
	}
	for {
		n, err := input.ReadInto(buf)
		if err != nil {
			return "", err
		}
		if n == 0 {
			break
		}
		engine.Update(buf[:n])
	}
	return engine.Finish().Hex(), nil
}

// CalcAsync is the suspendable form of Calc. Each ReadInto may park the
// calling goroutine; Update and Finish never do.
func CalcAsync(ctx context.Context, input AsyncInput, engine hashengines.Engine) (string, error) {
	return CalcAsyncBuffer(ctx, input, engine, make([]byte, 0, DefaultChunkSize))
}

// CalcAsyncBuffer is CalcAsync with a caller-supplied buffer. Reads go into
// the buffer's full capacity; its length is reset to zero before each read
// and set to the returned count after it, so stale bytes from an earlier
// read never reach the engine.
func CalcAsyncBuffer(ctx context.Context, input AsyncInput, engine hashengines.Engine, buf []byte) (string, error) {
	if cap(buf) == 0 {
		return "", io.ErrShortBuffer
	}
	for {
		buf = buf[:0]
		n, err := input.ReadInto(ctx, buf[:cap(buf)])
		if err != nil {
			return "", err
		}
		if n == 0 {
			break
		}
		buf = buf[:n]
		engine.Update(buf)
	}
	return engine.Finish().Hex(), nil
}
