// Package diskstore implements backend.ObjectStore on the local filesystem.
// Objects are written under <baseDir>/<bucket>/<path> and served from
// <staticBase>/<bucket>/<path>.
package diskstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"consultancy/internal/backend"
)

var ErrInvalidPath = errors.New("invalid object path")

type Store struct {
	baseDir    string
	staticBase string
}

func New(baseDir, staticBase string) *Store {
	return &Store{baseDir: baseDir, staticBase: strings.TrimRight(staticBase, "/")}
}

func (s *Store) BaseDir() string { return s.baseDir }

// Upload never overwrites: an existing object yields backend.ErrObjectExists.
func (s *Store) Upload(ctx context.Context, bucket, objectPath, _ string, r io.Reader, size int64) (string, error) {
	rel, err := cleanKey(bucket, objectPath)
	if err != nil {
		return "", err
	}
	abs := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("%w: create directory: %v", backend.ErrUnavailable, err)
	}

	dst, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return "", backend.ErrObjectExists
	}
	if err != nil {
		return "", fmt.Errorf("%w: create object: %v", backend.ErrUnavailable, err)
	}

	src := io.Reader(r)
	if size > 0 {
		src = io.LimitReader(r, size)
	}
	_, copyErr := io.Copy(dst, readerWithContext(ctx, src))
	closeErr := dst.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(abs)
		return "", fmt.Errorf("%w: write object: %v", backend.ErrUnavailable, errors.Join(copyErr, closeErr))
	}

	return s.staticBase + "/" + rel, nil
}

func (s *Store) Remove(_ context.Context, bucket, objectPath string) error {
	rel, err := cleanKey(bucket, objectPath)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return backend.ErrNotFound
	}
	return err
}

func cleanKey(bucket, objectPath string) (string, error) {
	if bucket == "" || objectPath == "" || strings.Contains(bucket, "/") {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean("/" + objectPath)
	if cleaned == "/" || strings.Contains(objectPath, "..") {
		return "", ErrInvalidPath
	}
	return bucket + cleaned, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
