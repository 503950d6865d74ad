// Package mailio has helpers for reading messages and processing batches of
// them concurrently.
package mailio

import (
	"errors"
	"fmt"
	"io"
)

var ErrLimit = errors.New("message exceeds maximum size") // Returned by LimitReader.

// LimitReader reads up to Limit bytes, returning ErrLimit if more bytes are
// read. Unlike io.LimitReader, oversized input is an error instead of being
// truncated.
type LimitReader struct {
	R     io.Reader
	Limit int64
}

// Read reads bytes from the underlying reader.
func (r *LimitReader) Read(buf []byte) (int, error) {
	n, err := r.R.Read(buf)
	if n > 0 {
		r.Limit -= int64(n)
		if r.Limit < 0 {
			return 0, ErrLimit
		}
	}
	return n, err
}

// ReadMessage reads a full message from r, of at most maxSize bytes. Errors
// other than ErrLimit are wrapped.
func ReadMessage(r io.Reader, maxSize int64) ([]byte, error) {
	buf, err := io.ReadAll(&LimitReader{r, maxSize})
	if err != nil && !errors.Is(err, ErrLimit) {
		err = fmt.Errorf("reading message: %w", err)
	}
	return buf, err
}
