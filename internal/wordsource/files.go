// Package wordsource loads word lists and packed dictionaries from files and
// from BigQuery.
package wordsource

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/multierr"
)

// Open opens path for reading, transparently decompressing it when the name
// ends in ".gz".
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, multierr.Append(err, f.Close())
	}
	return &gzipReadCloser{Reader: zr, file: f}, nil
}

type gzipReadCloser struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Close() error {
	return multierr.Append(g.Reader.Close(), g.file.Close())
}

// Create creates path for writing, compressing the stream when the name ends
// in ".gz".
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	return &gzipWriteCloser{Writer: gzip.NewWriter(f), file: f}, nil
}

type gzipWriteCloser struct {
	*gzip.Writer
	file *os.File
}

func (g *gzipWriteCloser) Close() error {
	return multierr.Append(g.Writer.Close(), g.file.Close())
}
