package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"consultancy/internal/backend"
)

const (
	MaxImageSize = 5 << 20 // 5 MiB
	Bucket       = "blog-images"
	Folder       = "featured-images"

	sniffLen = 3072
)

// Image is a stored featured image.
type Image struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Service validates blog images and hands them to object storage.
type Service struct {
	objects backend.ObjectStore
	now     func() time.Time
}

func NewService(objects backend.ObjectStore) *Service {
	return &Service{objects: objects, now: time.Now}
}

// CheckSize rejects empty files and files over MaxImageSize before any bytes are read.
func CheckSize(size int64) error {
	if size <= 0 {
		return ErrEmptyFile
	}
	if size > MaxImageSize {
		return fmt.Errorf("%w: %s is over the %s limit", ErrFileTooLarge,
			humanize.IBytes(uint64(size)), humanize.IBytes(MaxImageSize))
	}
	return nil
}

// Sniff returns the detected content type of head if it is an image.
func Sniff(head []byte) (*mimetype.MIME, error) {
	m := mimetype.Detect(head)
	if !strings.HasPrefix(m.String(), "image/") {
		return nil, fmt.Errorf("%w: got %s", ErrNotImage, m.String())
	}
	return m, nil
}

// UploadImage stores r under featured-images/<unix-millis>-<random>.<ext> in the blog-images bucket.
// Nothing is uploaded unless the size and content checks pass.
func (s *Service) UploadImage(ctx context.Context, filename string, size int64, r io.Reader) (*Image, error) {
	if err := CheckSize(size); err != nil {
		return nil, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	m, err := Sniff(head)
	if err != nil {
		return nil, err
	}

	ext := m.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(filename))
	}
	objectPath := fmt.Sprintf("%s/%d-%s%s", Folder, s.now().UnixMilli(), randomSuffix(), ext)

	body := io.MultiReader(bytes.NewReader(head), r)
	url, err := s.objects.Upload(ctx, Bucket, objectPath, m.String(), body, size)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	return &Image{URL: url, Path: objectPath, ContentType: m.String(), Size: size}, nil
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
