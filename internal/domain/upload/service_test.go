package upload

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, bucket, path, contentType string, r io.Reader, size int64) (string, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(ctx, bucket, path, contentType, len(data), size)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Remove(ctx context.Context, bucket, path string) error {
	args := m.Called(ctx, bucket, path)
	return args.Error(0)
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func pngOfSize(n int) []byte {
	b := make([]byte, n)
	copy(b, pngSignature)
	return b
}

func TestUploadImage_AcceptsPNG(t *testing.T) {
	objects := new(MockObjectStore)
	svc := NewService(objects)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	data := pngOfSize(2 << 20)
	objects.On("Upload", mock.Anything, Bucket,
		mock.MatchedBy(func(p string) bool {
			return strings.HasPrefix(p, "featured-images/1700000000000-") && strings.HasSuffix(p, ".png")
		}),
		"image/png", len(data), int64(len(data)),
	).Return("/static/uploads/blog-images/featured-images/x.png", nil)

	img, err := svc.UploadImage(context.Background(), "photo.png", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/blog-images/featured-images/x.png", img.URL)
	assert.Equal(t, "image/png", img.ContentType)
	objects.AssertExpectations(t)
}

func TestUploadImage_RejectsLargeFile(t *testing.T) {
	objects := new(MockObjectStore)
	svc := NewService(objects)

	size := int64(6 << 20)
	_, err := svc.UploadImage(context.Background(), "big.png", size, bytes.NewReader(pngOfSize(64)))
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Contains(t, err.Error(), "6.0 MiB")
	objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadImage_RejectsPDF(t *testing.T) {
	objects := new(MockObjectStore)
	svc := NewService(objects)

	pdf := []byte("%PDF-1.7\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	_, err := svc.UploadImage(context.Background(), "doc.pdf", int64(len(pdf)), bytes.NewReader(pdf))
	assert.ErrorIs(t, err, ErrNotImage)
	objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadImage_RejectsImageExtensionWithTextBody(t *testing.T) {
	svc := NewService(new(MockObjectStore))

	body := []byte("just some text pretending")
	_, err := svc.UploadImage(context.Background(), "fake.png", int64(len(body)), bytes.NewReader(body))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestCheckSize(t *testing.T) {
	assert.ErrorIs(t, CheckSize(0), ErrEmptyFile)
	assert.NoError(t, CheckSize(MaxImageSize))
	assert.ErrorIs(t, CheckSize(MaxImageSize+1), ErrFileTooLarge)
}
