package samplesheet

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression represents the compression wrapper around a sample sheet file.
type Compression int

const (
	// CompressionNone represents plain uncompressed files
	CompressionNone Compression = iota
	// CompressionGZ represents gzip compression
	CompressionGZ
	// CompressionBZ2 represents bzip2 compression
	CompressionBZ2
	// CompressionXZ represents xz compression
	CompressionXZ
	// CompressionZSTD represents zstd compression
	CompressionZSTD
)

// String returns the string representation of Compression
func (c Compression) String() string {
	switch c {
	case CompressionGZ:
		return "gzip"
	case CompressionBZ2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

// Extension returns the file extension for the compression type, empty for
// CompressionNone.
func (c Compression) Extension() string {
	switch c {
	case CompressionGZ:
		return extGZ
	case CompressionBZ2:
		return extBZ2
	case CompressionXZ:
		return extXZ
	case CompressionZSTD:
		return extZSTD
	default:
		return ""
	}
}

// detectCompression detects the compression type from the file path suffix.
func detectCompression(path string) Compression {
	path = strings.ToLower(path)
	switch {
	case strings.HasSuffix(path, extGZ):
		return CompressionGZ
	case strings.HasSuffix(path, extBZ2):
		return CompressionBZ2
	case strings.HasSuffix(path, extXZ):
		return CompressionXZ
	case strings.HasSuffix(path, extZSTD):
		return CompressionZSTD
	default:
		return CompressionNone
	}
}

// newReader wraps reader with the matching decompression layer. The returned
// close function releases the decompressor only, not the underlying reader.
func (c Compression) newReader(reader io.Reader) (io.Reader, func() error, error) {
	switch c {
	case CompressionNone:
		return reader, func() error { return nil }, nil
	case CompressionGZ:
		gzReader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzReader, gzReader.Close, nil
	case CompressionBZ2:
		return bzip2.NewReader(reader), func() error { return nil }, nil
	case CompressionXZ:
		xzReader, err := xz.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzReader, func() error { return nil }, nil
	case CompressionZSTD:
		decoder, err := zstd.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return decoder.IOReadCloser(), func() error {
			decoder.Close()
			return nil
		}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported compression type for reading: %v", c)
	}
}

// newWriter wraps writer with the matching compression layer. bzip2 has no
// writer in the standard library and fails.
func (c Compression) newWriter(writer io.Writer) (io.Writer, func() error, error) {
	switch c {
	case CompressionNone:
		return writer, func() error { return nil }, nil
	case CompressionGZ:
		gzWriter := gzip.NewWriter(writer)
		return gzWriter, gzWriter.Close, nil
	case CompressionBZ2:
		return nil, nil, errors.New("bzip2 compression is not supported for writing")
	case CompressionXZ:
		xzWriter, err := xz.NewWriter(writer)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return xzWriter, xzWriter.Close, nil
	case CompressionZSTD:
		zstdWriter, err := zstd.NewWriter(writer)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return zstdWriter, zstdWriter.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported compression type for writing: %v", c)
	}
}
