// Package hash provides content hashing for files and short stable ids.
package hash

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// IDLength is the number of hex characters used for truncated hash IDs.
const IDLength = 16

// TruncatedSHA256 returns the first IDLength hex characters of the
// SHA-256 of data.
func TruncatedSHA256(data string) string {
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])[:IDLength]
}

// chunkSize bounds how much of a file is hashed between context checks.
const chunkSize = 1 << 20

// Reader returns the hex SHA-256 of everything read from r. It stops early
// with ctx.Err() when ctx is cancelled.
func Reader(ctx context.Context, r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := io.CopyBuffer(h, io.LimitReader(r, chunkSize), buf)
		if err != nil {
			return "", err
		}
		if n < chunkSize {
			break
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// File returns the hex SHA-256 of the file at path.
func File(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sum, err := Reader(ctx, f)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return sum, nil
}
