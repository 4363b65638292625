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
	"fmt"
	"io/fs"
	"os"
)

// PathType is the kind of filesystem entry a path must name.
type PathType int

const (
	PathTypeFile PathType = iota
	PathTypeFolder
	PathTypeAny
)

// PathValidator checks a single user-supplied path. fieldName is used in
// error messages, e.g. "checksum file".
type PathValidator struct {
	fieldName string
	path      string
	pathType  PathType
}

func NewPathValidator(fieldName, path string, pathType PathType) *PathValidator {
	return &PathValidator{
		fieldName: fieldName,
		path:      path,
		pathType:  pathType,
	}
}

// Validate reports an empty path, a missing path, or an entry of the wrong
// kind. The standard input marker is always accepted for files.
func (v *PathValidator) Validate() error {
	if v.path == "" {
		return fmt.Errorf("%s is required", v.fieldName)
	}
	if v.path == StdinPath && v.pathType != PathTypeFolder {
		return nil
	}

	info, err := os.Stat(v.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s %q does not exist", v.fieldName, v.path)
		}
		return fmt.Errorf("checking %s %q: %w", v.fieldName, v.path, err)
	}

	switch v.pathType {
	case PathTypeFile:
		if info.IsDir() {
			return fmt.Errorf("%s %q is a directory, expected file", v.fieldName, v.path)
		}
	case PathTypeFolder:
		if !info.IsDir() {
			return fmt.Errorf("%s %q is a file, expected directory", v.fieldName, v.path)
		}
	}
	return nil
}

// ValidateMultiple validates every path and returns the first failure.
func ValidateMultiple(fieldName string, paths []string, pathType PathType) error {
	for i, path := range paths {
		if err := NewPathValidator(fmt.Sprintf("%s[%d]", fieldName, i), path, pathType).Validate(); err != nil {
			return err
		}
	}
	return nil
}

func ValidateFileExists(fieldName, path string) error {
	return NewPathValidator(fieldName, path, PathTypeFile).Validate()
}
