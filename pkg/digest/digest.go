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

// Package digest is the top-level API for SHA-256 digests.
//
// There is one function per combination of input kind, execution mode and
// engine. In-memory values are hashed in one shot and never fail. Paths and
// readers are streamed through a fixed-size buffer, either on the calling
// goroutine or as a Task that can be awaited or cancelled.
//
//	digest.Of("hello")                  // 2cf24dba...
//	digest.OfRune('π')                  // 2617fcb9...
//	hex, err := digest.FromPath("./foo.file")
//	hex, err = digest.FromPathAsync(ctx, "./foo.file").Wait()
//
// Every function returns a 64-character lowercase hex string. Errors are the
// I/O errors of the underlying resource, returned unchanged.
package digest

import (
	"io"
	"os"
	"unicode/utf8"

	hashengines "github.com/streamhash/streamhash/pkg/hashing/engines"
	hashio "github.com/streamhash/streamhash/pkg/hashing/engines/io"
	"github.com/streamhash/streamhash/pkg/hashing/engines/memory"
)

// Text is the set of in-memory values Of accepts.
type Text interface {
	~string | ~[]byte
}

// Of returns the digest of an in-memory string or byte slice.
func Of[T Text](v T) string {
	return memory.SumSHA256([]byte(v)).Hex()
}

// OfSIMD is Of using the alternate engine.
func OfSIMD[T Text](v T) string {
	return memory.SumSIMD([]byte(v)).Hex()
}

// OfRune returns the digest of the UTF-8 encoding of r.
func OfRune(r rune) string {
	return memory.SumSHA256(utf8.AppendRune(nil, r)).Hex()
}

// FromPath streams the file at path through the default engine.
func FromPath(path string) (string, error) {
	return FromPathWith(path, memory.NewSHA256)
}

// FromPathSIMD streams the file at path through the alternate engine.
func FromPathSIMD(path string) (string, error) {
	return FromPathWith(path, memory.NewSIMD)
}

// FromPathWith streams the file at path through an engine built by newEngine.
// Open and read failures are returned unchanged; an open failure is an
// *fs.PathError.
func FromPathWith(path string, newEngine hashengines.Factory) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	//nolint:errcheck
	defer f.Close()

	return FromReaderWith(f, newEngine)
}

// FromReader streams r through the default engine until it reports end of
// stream. r is not closed.
func FromReader(r io.Reader) (string, error) {
	return FromReaderWith(r, memory.NewSHA256)
}

// FromReaderWith streams r through an engine built by newEngine.
func FromReaderWith(r io.Reader, newEngine hashengines.Factory) (string, error) {
	return hashio.Calc(hashio.NewReaderInput(r), newEngine())
}
