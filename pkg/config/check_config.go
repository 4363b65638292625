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

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/streamhash/streamhash/pkg/utils"
)

// ErrChecksumMismatch is wrapped by Check when any entry fails.
var ErrChecksumMismatch = errors.New("checksum verification failed")

// CheckStatus is the outcome for one checksum entry.
type CheckStatus int

const (
	CheckOK CheckStatus = iota
	CheckMismatch
	CheckMissing
	CheckUnreadable
)

func (s CheckStatus) String() string {
	switch s {
	case CheckOK:
		return "OK"
	case CheckMismatch:
		return "FAILED"
	case CheckMissing:
		return "MISSING"
	case CheckUnreadable:
		return "FAILED open or read"
	}
	return "UNKNOWN"
}

// CheckResult pairs an expected entry with what was found on disk.
type CheckResult struct {
	Entry  utils.ChecksumLine
	Actual string
	Status CheckStatus
	Err    error
}

// CheckReport holds one result per entry, in input order.
type CheckReport struct {
	Results []CheckResult
}

// Failures counts results that make the check fail under ignoreMissing.
func (r *CheckReport) Failures(ignoreMissing bool) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == CheckOK || (ignoreMissing && res.Status == CheckMissing) {
			continue
		}
		n++
	}
	return n
}

// CheckConfig verifies files against a checksum list.
type CheckConfig struct {
	hashingConfig *HashingConfig
	baseDir       string
	ignoreMissing bool
}

func NewCheckConfig() *CheckConfig {
	return &CheckConfig{}
}

// SetHashingConfig sets how files are hashed. Without it NewHashingConfig
// defaults are used.
func (c *CheckConfig) SetHashingConfig(hashingConfig *HashingConfig) *CheckConfig {
	c.hashingConfig = hashingConfig
	return c
}

// SetBaseDir resolves relative entry paths against dir instead of the
// working directory.
func (c *CheckConfig) SetBaseDir(dir string) *CheckConfig {
	c.baseDir = dir
	return c
}

// SetIgnoreMissing stops missing files from failing the check.
func (c *CheckConfig) SetIgnoreMissing(ignore bool) *CheckConfig {
	c.ignoreMissing = ignore
	return c
}

// Check hashes every entry's file and compares it with the expected digest.
// The report is returned even when verification fails; the error then wraps
// ErrChecksumMismatch and lists every failing entry.
func (c *CheckConfig) Check(ctx context.Context, entries []utils.ChecksumLine) (*CheckReport, error) {
	hc := c.hashingConfig
	if hc == nil {
		hc = NewHashingConfig()
	}

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
		if c.baseDir != "" && !filepath.IsAbs(e.Path) {
			paths[i] = filepath.Join(c.baseDir, e.Path)
		}
	}

	// Entries name files, never directories.
	results, err := hc.clone().SetRecursive(false, false).Hash(ctx, paths)
	if err != nil {
		return nil, err
	}

	report := &CheckReport{Results: make([]CheckResult, len(entries))}
	for i, res := range results {
		cr := CheckResult{Entry: entries[i], Actual: res.Digest, Err: res.Err}
		switch {
		case res.Err != nil && errors.Is(res.Err, fs.ErrNotExist):
			cr.Status = CheckMissing
		case res.Err != nil:
			cr.Status = CheckUnreadable
		case res.Digest != entries[i].Digest:
			cr.Status = CheckMismatch
		default:
			cr.Status = CheckOK
		}
		report.Results[i] = cr
	}

	if report.Failures(c.ignoreMissing) > 0 {
		return report, fmt.Errorf("%w:\n%s", ErrChecksumMismatch, formatDiffMessages(c.diff(report)))
	}
	return report, nil
}

func (c *CheckConfig) diff(report *CheckReport) []string {
	var diffs []string
	for _, res := range report.Results {
		switch res.Status {
		case CheckMismatch:
			diffs = append(diffs, fmt.Sprintf("Hash mismatch for '%s': Expected '%s', Actual '%s'",
				res.Entry.Path, res.Entry.Digest, res.Actual))
		case CheckMissing:
			if !c.ignoreMissing {
				diffs = append(diffs, fmt.Sprintf("Missing file '%s'", res.Entry.Path))
			}
		case CheckUnreadable:
			diffs = append(diffs, fmt.Sprintf("Cannot read '%s': %v", res.Entry.Path, res.Err))
		}
	}
	return diffs
}

func formatDiffMessages(diffs []string) string {
	if len(diffs) == 0 {
		return "no differences found"
	}
	return strings.Join(diffs, "\n")
}
