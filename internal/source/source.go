// Package source opens the startup data files, decompressing gzip and zstd
// inputs by extension.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// MaxLineSize bounds a single record. A 300-dimension NASARI line is ~6 KiB.
const MaxLineSize = 1 << 20

// Format is the on-disk encoding of a data file.
type Format string

const (
	// FormatPlain is uncompressed text.
	FormatPlain Format = "plain"
	// FormatGzip is gzip, decoded with klauspost/compress.
	FormatGzip Format = "gzip"
	// FormatZstd is Zstandard.
	FormatZstd Format = "zstd"
)

// DetectFormat returns the encoding implied by the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return FormatGzip
	case ".zst", ".zstd":
		return FormatZstd
	default:
		return FormatPlain
	}
}

// Open opens path for reading and wraps it in a decompressor when the
// extension calls for one. The caller must close the returned reader.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	rc, err := Wrap(f, DetectFormat(path))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return rc, nil
}

// Wrap returns a reader that decodes r according to format. Closing the
// result also closes r.
func Wrap(r io.ReadCloser, format Format) (io.ReadCloser, error) {
	switch format {
	case FormatGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return &stackedReader{Reader: zr, closers: []func() error{zr.Close, r.Close}}, nil
	case FormatZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return &stackedReader{Reader: dec, closers: []func() error{
			func() error { dec.Close(); return nil },
			r.Close,
		}}, nil
	default:
		return r, nil
	}
}

// NewScanner returns a line scanner sized for vector records.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return sc
}

type stackedReader struct {
	io.Reader
	closers []func() error
}

func (s *stackedReader) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
