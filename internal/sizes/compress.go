// Package sizes discovers build output files and measures their compressed size.
package sizes

import (
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/brotli"
	"github.com/huangsam/sizewatch/schema"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// countingWriter discards everything written to it and counts the bytes.
type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

// nopCloser turns a writer into an io.WriteCloser whose Close does nothing.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// newCompressor wraps w with the encoder for mode. Every encoder uses its
// strongest level so sizes match what a production server would send.
func newCompressor(mode schema.CompressionMode, w io.Writer) (io.WriteCloser, error) {
	switch mode {
	case schema.GzipCompression:
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case schema.BrotliCompression:
		return brotli.NewWriterLevel(w, brotli.BestCompression), nil
	case schema.ZstdCompression:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case schema.LZ4Compression:
		zw := lz4.NewWriter(w)
		if err := zw.Apply(lz4.CompressionLevelOption(lz4.Level9)); err != nil {
			return nil, fmt.Errorf("failed to configure lz4: %w", err)
		}
		return zw, nil
	case schema.NoCompression:
		return nopCloser{w}, nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", mode)
	}
}

// CompressedSize streams r through the encoder for mode and returns the
// number of compressed bytes produced.
func CompressedSize(mode schema.CompressionMode, r io.Reader) (int64, error) {
	counter := &countingWriter{}
	zw, err := newCompressor(mode, counter)
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(zw, r); err != nil {
		_ = zw.Close()
		return 0, fmt.Errorf("failed to compress with %s: %w", mode, err)
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish %s stream: %w", mode, err)
	}
	return counter.n, nil
}

// FileSize returns the compressed size of the file at path.
func FileSize(mode schema.CompressionMode, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()
	return CompressedSize(mode, f)
}
