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
	"errors"
	"strings"
	"testing"
)

const helloHex = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func TestParseChecksumLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    ChecksumLine
		wantErr bool
	}{
		{
			name: "gnu text mode",
			line: helloHex + "  hello.txt",
			want: ChecksumLine{Digest: helloHex, Path: "hello.txt"},
		},
		{
			name: "gnu binary mode",
			line: helloHex + " *hello.bin",
			want: ChecksumLine{Digest: helloHex, Path: "hello.bin", Binary: true},
		},
		{
			name: "path with spaces and crlf",
			line: helloHex + "  my file.txt\r\n",
			want: ChecksumLine{Digest: helloHex, Path: "my file.txt"},
		},
		{
			name: "uppercase digest",
			line: strings.ToUpper(helloHex) + "  a",
			want: ChecksumLine{Digest: helloHex, Path: "a"},
		},
		{
			name: "bsd tag",
			line: "SHA256 (dir/a b.txt) = " + helloHex,
			want: ChecksumLine{Digest: helloHex, Path: "dir/a b.txt"},
		},
		{name: "short digest", line: "abc  file", wantErr: true},
		{name: "single space", line: helloHex + " file", wantErr: true},
		{name: "missing path", line: helloHex + "  ", wantErr: true},
		{name: "not hex", line: strings.Repeat("zz", 32) + "  file", wantErr: true},
		{name: "bsd missing digest", line: "SHA256 (file) = ", wantErr: true},
		{name: "bsd missing separator", line: "SHA256 (file)", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChecksumLine(tt.line)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedChecksumLine) {
					t.Errorf("ParseChecksumLine(%q) error = %v, want ErrMalformedChecksumLine", tt.line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseChecksumLine(%q) unexpected error: %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("ParseChecksumLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestChecksumLineRoundTrip(t *testing.T) {
	cl := ChecksumLine{Digest: helloHex, Path: "hello.txt"}
	got, err := ParseChecksumLine(cl.String())
	if err != nil {
		t.Fatal(err)
	}
	if got != cl {
		t.Errorf("round trip = %+v, want %+v", got, cl)
	}
}

func TestTaggedChecksumLineRoundTrip(t *testing.T) {
	line := FormatTaggedChecksumLine(helloHex, "dir/a.txt")
	if line != "SHA256 (dir/a.txt) = "+helloHex {
		t.Errorf("FormatTaggedChecksumLine() = %q", line)
	}
	got, err := ParseChecksumLine(line)
	if err != nil {
		t.Fatal(err)
	}
	if got.Path != "dir/a.txt" || got.Digest != helloHex {
		t.Errorf("ParseChecksumLine() = %+v", got)
	}
}

func TestParseChecksums(t *testing.T) {
	input := strings.Join([]string{
		"# generated by streamhash",
		helloHex + "  a.txt",
		"",
		"SHA256 (b.txt) = " + helloHex,
	}, "\n")

	lines, err := ParseChecksums(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0].Path != "a.txt" || lines[1].Path != "b.txt" {
		t.Errorf("ParseChecksums() = %+v", lines)
	}
}

func TestParseChecksums_ReportsLineNumber(t *testing.T) {
	input := helloHex + "  a.txt\nnot a checksum\n"
	_, err := ParseChecksums(strings.NewReader(input))
	if !errors.Is(err, ErrMalformedChecksumLine) {
		t.Fatalf("error = %v, want ErrMalformedChecksumLine", err)
	}
	if !strings.HasPrefix(err.Error(), "line 2:") {
		t.Errorf("error %q does not name line 2", err)
	}
}
