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

package utils

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedChecksumLine is wrapped by every checksum parsing failure.
var ErrMalformedChecksumLine = errors.New("malformed checksum line")

// ChecksumLine is one entry of a checksum list.
type ChecksumLine struct {
	Digest string
	Path   string
	// Binary records the '*' marker of the GNU format. It has no effect on
	// hashing.
	Binary bool
}

// String renders the entry in GNU coreutils format.
func (c ChecksumLine) String() string {
	return FormatChecksumLine(c.Digest, c.Path)
}

// FormatChecksumLine renders "<hex>  <path>", the output format of sha256sum.
func FormatChecksumLine(digest, path string) string {
	return digest + "  " + path
}

// FormatTaggedChecksumLine renders "SHA256 (<path>) = <hex>", the BSD tag
// format.
func FormatTaggedChecksumLine(digest, path string) string {
	return "SHA256 (" + path + ") = " + digest
}

// ParseChecksumLine accepts the two formats written by common tools:
//
//	<hex>  <path>          GNU text mode
//	<hex> *<path>          GNU binary mode
//	SHA256 (<path>) = <hex>  BSD tag format
//
// The digest is lowercased.
func ParseChecksumLine(line string) (ChecksumLine, error) {
	line = strings.TrimRight(line, "\r\n")

	if rest, ok := strings.CutPrefix(line, "SHA256 ("); ok {
		path, digest, found := strings.Cut(rest, ") = ")
		if !found || path == "" {
			return ChecksumLine{}, fmt.Errorf("%w: %q", ErrMalformedChecksumLine, line)
		}
		return newChecksumLine(digest, path, false, line)
	}

	if len(line) < DigestHexLength+2 || line[DigestHexLength] != ' ' {
		return ChecksumLine{}, fmt.Errorf("%w: %q", ErrMalformedChecksumLine, line)
	}
	digest := line[:DigestHexLength]
	switch mode, path := line[DigestHexLength+1], line[DigestHexLength+2:]; {
	case path == "":
		return ChecksumLine{}, fmt.Errorf("%w: missing path: %q", ErrMalformedChecksumLine, line)
	case mode == ' ':
		return newChecksumLine(digest, path, false, line)
	case mode == '*':
		return newChecksumLine(digest, path, true, line)
	}
	return ChecksumLine{}, fmt.Errorf("%w: %q", ErrMalformedChecksumLine, line)
}

func newChecksumLine(digest, path string, binary bool, line string) (ChecksumLine, error) {
	if len(digest) != DigestHexLength {
		return ChecksumLine{}, fmt.Errorf("%w: digest must be %d hex characters: %q", ErrMalformedChecksumLine, DigestHexLength, line)
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return ChecksumLine{}, fmt.Errorf("%w: %q: %v", ErrMalformedChecksumLine, line, err)
	}
	return ChecksumLine{Digest: strings.ToLower(digest), Path: path, Binary: binary}, nil
}

// ParseChecksums reads a checksum list. Blank lines and lines starting with
// '#' are skipped. Errors carry the 1-based line number.
func ParseChecksums(r io.Reader) ([]ChecksumLine, error) {
	var lines []ChecksumLine

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		text := sc.Text()
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cl, err := ParseChecksumLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		lines = append(lines, cl)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading checksum list: %w", err)
	}
	return lines, nil
}
