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

package digest

import (
	"context"
	"io"
	"os"

	hashengines "github.com/streamhash/streamhash/pkg/hashing/engines"
	hashio "github.com/streamhash/streamhash/pkg/hashing/engines/io"
	"github.com/streamhash/streamhash/pkg/hashing/engines/memory"
)

// Task is a digest computation running on its own goroutine.
//
// The task owns its engine, read buffer and source. Reads park only the
// task's goroutine. The source is released on every exit path, including
// Cancel and cancellation of the parent context.
type Task struct {
	done   chan struct{}
	cancel context.CancelFunc
	digest string
	err    error
}

func start(ctx context.Context, run func(context.Context) (string, error)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer close(t.done)
		defer cancel()
		t.digest, t.err = run(ctx)
	}()
	return t
}

// Done is closed when the task has finished and its source is released.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes and returns its result.
func (t *Task) Wait() (string, error) {
	<-t.done
	return t.digest, t.err
}

// Await waits for the task or for ctx, whichever comes first. If ctx wins,
// the task is cancelled and ctx.Err() is returned at once; the task is
// discarded and winds down on its own. Racing against context.WithTimeout is
// how callers impose a deadline.
//
// A source that is not an io.Closer cannot be interrupted, so its goroutine
// stays parked in Read until the source returns.
func (t *Task) Await(ctx context.Context) (string, error) {
	select {
	case <-t.done:
		return t.digest, t.err
	case <-ctx.Done():
		t.cancel()
		return "", ctx.Err()
	}
}

// Cancel abandons the task. It is safe to call more than once and after
// the task has finished.
func (t *Task) Cancel() {
	t.cancel()
}

// FromPathAsync opens and hashes the file at path on a new goroutine with the
// default engine.
func FromPathAsync(ctx context.Context, path string) *Task {
	return FromPathAsyncWith(ctx, path, memory.NewSHA256)
}

// FromPathAsyncSIMD is FromPathAsync using the alternate engine.
func FromPathAsyncSIMD(ctx context.Context, path string) *Task {
	return FromPathAsyncWith(ctx, path, memory.NewSIMD)
}

// FromPathAsyncWith opens and hashes the file at path on a new goroutine with
// an engine built by newEngine. The open itself happens on the task goroutine.
func FromPathAsyncWith(ctx context.Context, path string, newEngine hashengines.Factory) *Task {
	return start(ctx, func(ctx context.Context) (string, error) {
		return hashFileAsync(ctx, path, newEngine)
	})
}

// FromReaderAsync hashes r on a new goroutine with the default engine. If r
// is an io.Closer it is closed when the task is cancelled.
func FromReaderAsync(ctx context.Context, r io.Reader) *Task {
	return FromReaderAsyncWith(ctx, r, memory.NewSHA256)
}

// FromReaderAsyncWith hashes r on a new goroutine with an engine built by
// newEngine.
func FromReaderAsyncWith(ctx context.Context, r io.Reader, newEngine hashengines.Factory) *Task {
	return start(ctx, func(ctx context.Context) (string, error) {
		return hashio.CalcAsync(ctx, hashio.NewAsyncReaderInput(r), newEngine())
	})
}

func hashFileAsync(ctx context.Context, path string, newEngine hashengines.Factory) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	//nolint:errcheck
	defer f.Close()

	return hashio.CalcAsync(ctx, hashio.NewAsyncReaderInput(f), newEngine())
}
