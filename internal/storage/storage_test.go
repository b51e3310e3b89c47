package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
)

func TestLocalStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "documents/1/abc_report.pdf", bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"))

	rc, err := store.Open(ctx, "documents/1/abc_report.pdf")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, pdfBytes, got)

	require.NoError(t, store.Delete(ctx, "documents/1/abc_report.pdf"))
	require.ErrorIs(t, store.Delete(ctx, "documents/1/abc_report.pdf"), ErrNotExist)

	_, err = store.Open(ctx, "documents/1/abc_report.pdf")
	require.ErrorIs(t, err, ErrNotExist)
}

func TestLocalStore_RefusesOverwriteAndTraversal(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "a/b.txt", strings.NewReader("one"), 3, "text/plain"))
	require.Error(t, store.Save(ctx, "a/b.txt", strings.NewReader("two"), 3, "text/plain"))

	require.Error(t, store.Save(ctx, "../escape.txt", strings.NewReader("x"), 1, "text/plain"))
	_, err = store.Open(ctx, "../../etc/passwd")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotExist)
}

func TestDetectContentType(t *testing.T) {
	allowed := []string{"application/pdf", "text/plain", "image/png"}

	tests := []struct {
		name    string
		content []byte
		allowed []string
		want    string
		wantErr error
	}{
		{"pdf", pdfBytes, allowed, "application/pdf", nil},
		{"png", pngBytes, allowed, "image/png", nil},
		{"text", []byte("meeting notes\nline two\n"), allowed, "text/plain", nil},
		{"png rejected for pdf only", pngBytes, []string{"application/pdf"}, "", ErrFileTypeNotAllowed},
		{"text rejected for pdf only", []byte("hello"), []string{"application/pdf"}, "", ErrFileTypeNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.content)
			got, err := DetectContentType(r, tt.allowed)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			rest, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.content, rest, "reader must be rewound")
		})
	}
}

func TestUpload_Validate(t *testing.T) {
	upload := Upload{Filename: "a.pdf", Size: int64(len(pdfBytes)), Content: bytes.NewReader(pdfBytes)}
	mimeType, err := upload.Validate(1<<20, []string{"application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mimeType)

	upload.Size = 2 << 20
	_, err = upload.Validate(1<<20, []string{"application/pdf"})
	require.ErrorIs(t, err, ErrFileTooLarge)

	upload.Size = 0
	_, err = upload.Validate(1<<20, []string{"application/pdf"})
	require.ErrorIs(t, err, ErrEmptyFile)
}

type fakeS3 struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{objects: map[string][]byte{}}
	store := NewS3Store(client, "bucket")

	require.NoError(t, store.Save(ctx, "k", bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"))

	rc, err := store.Open(ctx, "k")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, got)

	require.NoError(t, store.Delete(ctx, "k"))
	require.ErrorIs(t, store.Delete(ctx, "k"), ErrNotExist)

	_, err = store.Open(ctx, "k")
	require.ErrorIs(t, err, ErrNotExist)

	client.putErr = errors.New("bucket gone")
	require.Error(t, store.Save(ctx, "k2", bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"))
}
