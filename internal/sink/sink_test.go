// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDirLazy(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "plots")
	s, err := Open(ctx, root, "")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	w, err := s.NewWriter(ctx, "dp_grouped_analysis.png", map[string]string{"Content-Type": "image/png"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(root); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("directory exists before any file was committed: %v", err)
	}
	fmt.Fprintf(w, "hello")
	if _, err := os.Stat(root); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("directory exists before Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(root, "dp_grouped_analysis.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("file contents %q, want %q", data, "hello")
	}
	if _, err := w.Write([]byte("x")); err == nil {
		t.Errorf("Write after Close succeeded")
	}
}

func TestDirDiscard(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "out")
	err := WriteFile(ctx, Dir(root), "summary.json", nil, func(w io.Writer) error {
		fmt.Fprintf(w, "partial")
		return errors.New("render failed")
	})
	if err == nil || err.Error() != "render failed" {
		t.Errorf("WriteFile error = %v, want render failed", err)
	}
	if _, err := os.Stat(root); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("discarded file created the directory: %v", err)
	}
}

func TestDirSubdirAndOverwrite(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	for _, contents := range []string{"one", "two"} {
		err := WriteFile(ctx, Dir(root), "csv/dp_average.csv", nil, func(w io.Writer) error {
			_, err := io.WriteString(w, contents)
			return err
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	data, err := os.ReadFile(filepath.Join(root, "csv", "dp_average.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "two" {
		t.Errorf("file contents %q, want %q", data, "two")
	}
}

func TestDirBadName(t *testing.T) {
	for _, name := range []string{"", "../escape.png", "/abs.png"} {
		if _, err := Dir(t.TempDir()).NewWriter(context.Background(), name, nil); err == nil {
			t.Errorf("NewWriter(%q) succeeded", name)
		}
	}
}

func TestMemSink(t *testing.T) {
	ctx := context.Background()
	s := NewMemSink()
	write := func(name, data string, fail bool) {
		t.Helper()
		WriteFile(ctx, s, name, nil, func(w io.Writer) error {
			io.WriteString(w, data)
			if fail {
				return errors.New("fail")
			}
			return nil
		})
	}
	write("b.csv", "b", false)
	write("a.csv", "a", false)
	write("c.csv", "c", true)
	if got, want := s.Files(), []string{"a.csv", "b.csv"}; !cmp.Equal(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}
	if data, ok := s.File("a.csv"); !ok || string(data) != "a" {
		t.Errorf("File(a.csv) = %q, %v", data, ok)
	}
}

func TestParseGCS(t *testing.T) {
	check := func(loc, bucket, prefix string, ok bool) {
		t.Helper()
		b, p, err := ParseGCS(loc)
		if (err == nil) != ok {
			t.Errorf("ParseGCS(%q) error = %v, want ok=%v", loc, err, ok)
			return
		}
		if b != bucket || p != prefix {
			t.Errorf("ParseGCS(%q) = %q, %q, want %q, %q", loc, b, p, bucket, prefix)
		}
	}
	check("gs://bench", "bench", "", true)
	check("gs://bench/", "bench", "", true)
	check("gs://bench/runs/2024/", "bench", "runs/2024", true)
	check("gs:///x", "", "", false)
	check("plots", "", "", false)
}
