// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sink

import (
	"context"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const gcsScheme = "gs://"

// GCS is a Sink that writes objects to a Cloud Storage bucket under a
// common prefix.
type GCS struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
}

// ParseGCS splits a gs://bucket/prefix location into its bucket and
// object prefix.
func ParseGCS(location string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(location, gcsScheme)
	if !ok {
		return "", "", fmt.Errorf("%q is not a %s location", location, gcsScheme)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%q has no bucket", location)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// NewGCS returns a GCS sink for location, which must have the form
// gs://bucket/prefix. If credentials is not empty, it names a service
// account key file to authenticate with.
func NewGCS(ctx context.Context, location, credentials string) (*GCS, error) {
	bucket, prefix, err := ParseGCS(location)
	if err != nil {
		return nil, err
	}
	var opts []option.ClientOption
	if credentials != "" {
		opts = append(opts, option.WithCredentialsFile(credentials))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCS{client: client, bucket: client.Bucket(bucket), prefix: prefix}, nil
}

// NewWriter implements Sink. A "Content-Type" metadata entry sets the
// object's content type; other entries become object metadata.
func (s *GCS) NewWriter(ctx context.Context, name string, metadata map[string]string) (Writer, error) {
	ctx, cancel := context.WithCancel(ctx)
	w := s.bucket.Object(path.Join(s.prefix, name)).NewWriter(ctx)
	for k, v := range metadata {
		if k == "Content-Type" {
			w.ContentType = v
			continue
		}
		if w.Metadata == nil {
			w.Metadata = make(map[string]string)
		}
		w.Metadata[k] = v
	}
	return &gcsWriter{Writer: w, cancel: cancel}, nil
}

// Close implements Sink.
func (s *GCS) Close() error {
	return s.client.Close()
}

type gcsWriter struct {
	*storage.Writer
	cancel context.CancelFunc
}

func (w *gcsWriter) Close() error {
	defer w.cancel()
	return w.Writer.Close()
}

// CloseWithError aborts the upload by canceling its context.
func (w *gcsWriter) CloseWithError(error) error {
	w.cancel()
	w.Writer.Close()
	return nil
}
