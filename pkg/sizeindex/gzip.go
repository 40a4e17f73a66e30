package sizeindex

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// DefaultGzipLevel matches the best-compression level used by gzip-size tooling
const DefaultGzipLevel = gzip.BestCompression

// GzipSizer computes the gzip-compressed size of a stream
type GzipSizer interface {
	GzipSize(ctx context.Context, r io.Reader) (int64, error)
}

// Gzip compresses into a counting writer and reports the byte count.
// Writers are pooled per sizer since gzip.Writer allocations dominate small files.
type Gzip struct {
	level      int
	bufferSize int
	writers    sync.Pool
	buffers    sync.Pool
}

// NewGzip creates a gzip sizer for the given compression level (1..9)
func NewGzip(level int) (*Gzip, error) {
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		return nil, fmt.Errorf("invalid gzip level %d (valid: %d-%d)", level, gzip.BestSpeed, gzip.BestCompression)
	}

	g := &Gzip{level: level, bufferSize: 64 * 1024}
	g.buffers.New = func() interface{} {
		buf := make([]byte, g.bufferSize)
		return &buf
	}
	return g, nil
}

// Level returns the compression level
func (g *Gzip) Level() int {
	return g.level
}

// GzipSize streams r through a gzip writer and returns the compressed size
func (g *Gzip) GzipSize(ctx context.Context, r io.Reader) (int64, error) {
	counter := &countingWriter{}

	zw, _ := g.writers.Get().(*gzip.Writer)
	if zw == nil {
		var err error
		zw, err = gzip.NewWriterLevel(counter, g.level)
		if err != nil {
			return 0, err
		}
	} else {
		zw.Reset(counter)
	}
	defer g.writers.Put(zw)

	bufPtr := g.buffers.Get().(*[]byte)
	defer g.buffers.Put(bufPtr)
	buf := *bufPtr

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			if _, err := zw.Write(buf[:n]); err != nil {
				return 0, err
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return 0, readErr
		}
	}

	if err := zw.Close(); err != nil {
		return 0, err
	}

	return counter.n, nil
}

type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}
