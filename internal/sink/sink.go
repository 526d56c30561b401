// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sink provides the destinations report and chart files are
// written to: a local directory, a Cloud Storage bucket, or memory.
package sink

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
)

// A Sink stores named files.
type Sink interface {
	// NewWriter returns a Writer for the file name. The file is
	// not visible until the Writer is closed. metadata carries
	// optional attributes such as "Content-Type"; sinks that have
	// nowhere to store them ignore them.
	NewWriter(ctx context.Context, name string, metadata map[string]string) (Writer, error)

	// Close releases any resources held by the sink.
	Close() error
}

// A Writer writes one file to a Sink.
type Writer interface {
	io.Writer
	// Close commits the file.
	io.Closer
	// CloseWithError discards the file. err is the reason it is
	// being discarded.
	CloseWithError(err error) error
}

// Open returns the Sink for location. A location of the form
// gs://bucket/prefix opens a Cloud Storage sink authenticated with the
// credentials file, or with application default credentials if
// credentials is empty. Any other location is a local directory,
// which is created on first write.
func Open(ctx context.Context, location, credentials string) (Sink, error) {
	if strings.HasPrefix(location, gcsScheme) {
		return NewGCS(ctx, location, credentials)
	}
	return Dir(location), nil
}

// WriteFile writes the output of fn to the file name in s. If fn
// fails, the file is discarded and fn's error is returned.
func WriteFile(ctx context.Context, s Sink, name string, metadata map[string]string, fn func(w io.Writer) error) error {
	w, err := s.NewWriter(ctx, name, metadata)
	if err != nil {
		return err
	}
	if err := fn(w); err != nil {
		w.CloseWithError(err)
		return err
	}
	return w.Close()
}

// MemSink is a Sink that stores files in memory.
type MemSink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemSink returns an empty MemSink.
func NewMemSink() *MemSink {
	return &MemSink{files: make(map[string][]byte)}
}

// Files returns the names of the files in s, sorted.
func (s *MemSink) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// File returns the contents of the file name, and whether it exists.
func (s *MemSink) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	return data, ok
}

// NewWriter implements Sink.
func (s *MemSink) NewWriter(_ context.Context, name string, _ map[string]string) (Writer, error) {
	return &bufWriter{commit: func(data []byte) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.files[name] = data
		return nil
	}}, nil
}

// Close implements Sink.
func (s *MemSink) Close() error { return nil }
