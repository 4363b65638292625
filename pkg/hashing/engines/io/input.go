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

// Package io streams input sources into hash engines.
//
// Input and AsyncInput abstract over where the bytes come from. Calc and
// CalcAsync are the streaming loops that pull fixed-size chunks from an input
// and fold them into an engine.
package io

import (
	"bufio"
	"context"
	"errors"
	"io"
)

// maxEmptyReads bounds how often a reader may return (0, nil) in a row
// before ReadInto gives up with io.ErrNoProgress.
const maxEmptyReads = 100

// Input supplies the next chunk of bytes to hash and may block the calling
// goroutine while waiting for data.
type Input interface {
	// ReadInto fills as much of buf as the input permits and returns the
	// number of bytes written. A return of 0 with a nil error is end of input.
	ReadInto(buf []byte) (int, error)
}

// AsyncInput is the suspendable form of Input. ReadInto parks only the calling
// goroutine while no data is available and gives up as soon as ctx is done.
type AsyncInput interface {
	// ReadInto fills as much of buf as the input permits and returns the
	// number of bytes written. A return of 0 with a nil error is end of input.
	// Once ctx is done it returns ctx.Err().
	ReadInto(ctx context.Context, buf []byte) (int, error)
}

var (
	_ Input      = (*BytesInput)(nil)
	_ Input      = (*ReaderInput)(nil)
	_ AsyncInput = (*AsyncReaderInput)(nil)
)

// BytesInput serves an in-memory byte slice through a cursor.
type BytesInput struct {
	data []byte
	off  int
}

// NewBytesInput returns an input over data. The slice is not copied and must
// not be modified while the input is in use.
func NewBytesInput(data []byte) *BytesInput {
	return &BytesInput{data: data}
}

// ReadInto copies the next bytes after the cursor into buf.
func (b *BytesInput) ReadInto(buf []byte) (int, error) {
	n := copy(buf, b.data[b.off:])
	b.off += n
	return n, nil
}

// Remaining reports how many bytes have not been read yet.
func (b *BytesInput) Remaining() int {
	return len(b.data) - b.off
}

// NonBlocking adapts an Input whose reads never wait, such as BytesInput, to
// AsyncInput. Each read first checks ctx.
func NonBlocking(in Input) AsyncInput {
	return nonBlocking{in: in}
}

type nonBlocking struct {
	in Input
}

func (n nonBlocking) ReadInto(ctx context.Context, buf []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return n.in.ReadInto(buf)
}

// ReaderInput is a buffered blocking input over an io.Reader such as an open
// file or a socket.
type ReaderInput struct {
	src chunkReader
}

// NewReaderInput wraps r in a bufio.Reader.
func NewReaderInput(r io.Reader) *ReaderInput {
	return &ReaderInput{src: chunkReader{r: bufio.NewReader(r)}}
}

// ReadInto reads up to len(buf) bytes. End of stream is reported as (0, nil);
// any other read error is returned unchanged.
func (r *ReaderInput) ReadInto(buf []byte) (int, error) {
	return r.src.read(buf)
}

// AsyncReaderInput is a buffered suspendable input over an io.Reader.
//
// Once ctx is done the source is closed if it is an io.Closer, which also
// wakes up a read that is parked on it. The source is unusable afterwards.
type AsyncReaderInput struct {
	src    chunkReader
	closer io.Closer
}

// NewAsyncReaderInput wraps r in a bufio.Reader.
func NewAsyncReaderInput(r io.Reader) *AsyncReaderInput {
	in := &AsyncReaderInput{src: chunkReader{r: bufio.NewReader(r)}}
	if c, ok := r.(io.Closer); ok {
		in.closer = c
	}
	return in
}

// ReadInto reads up to len(buf) bytes, parking the calling goroutine until data
// arrives, the source ends, or ctx is done.
func (a *AsyncReaderInput) ReadInto(ctx context.Context, buf []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		if a.closer != nil {
			_ = a.closer.Close()
		}
		return 0, err
	}

	if a.closer != nil {
		stop := context.AfterFunc(ctx, func() {
			_ = a.closer.Close()
		})
		defer stop()
	}

	n, err := a.src.read(buf)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}
	return n, err
}

// chunkReader performs reads that either yield data, reach end of stream, or
// fail. io.EOF is translated to (0, nil) so callers see a single end-of-input
// signal. An error that arrives together with data is held back until the
// data has been handed out.
type chunkReader struct {
	r       io.Reader
	pending error
}

func (c *chunkReader) read(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, io.ErrShortBuffer
	}
	if err := c.pending; err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, err
	}
	for i := 0; i < maxEmptyReads; i++ {
		n, err := c.r.Read(buf)
		if n > 0 {
			c.pending = err
			return n, nil
		}
		if errors.Is(err, io.EOF) {
			c.pending = err
			return 0, nil
		}
		if err != nil {
			c.pending = err
			return 0, err
		}
	}
	return 0, io.ErrNoProgress
}
