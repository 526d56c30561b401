// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// Dir is a Sink that writes files to a local directory. The
// directory, and any directories in a file's name, are created when
// the first file is committed, so a run that writes nothing leaves no
// trace.
type Dir string

// NewWriter implements Sink.
func (d Dir) NewWriter(_ context.Context, name string, _ map[string]string) (Writer, error) {
	if !filepath.IsLocal(name) {
		return nil, fmt.Errorf("invalid file name %q", name)
	}
	path := filepath.Join(string(d), filepath.FromSlash(name))
	return &bufWriter{commit: func(data []byte) error {
		if err := os.MkdirAll(filepath.Dir(path), 0o777); err != nil {
			return err
		}
		return atomic.WriteFile(path, bytes.NewReader(data))
	}}, nil
}

// Close implements Sink.
func (d Dir) Close() error { return nil }

var errClosed = errors.New("write to closed file")

// A bufWriter collects a file in memory and hands it to commit on
// Close.
type bufWriter struct {
	buf    bytes.Buffer
	commit func(data []byte) error
	closed bool
}

func (w *bufWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errClosed
	}
	return w.buf.Write(p)
}

func (w *bufWriter) Close() error {
	if w.closed {
		return errClosed
	}
	w.closed = true
	return w.commit(w.buf.Bytes())
}

func (w *bufWriter) CloseWithError(error) error {
	w.closed = true
	w.buf.Reset()
	return nil
}
