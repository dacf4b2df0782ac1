package s3gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitminer/bucket-sync/server"
)

func TestListObjectsFollowsPages(t *testing.T) {
	calls := 0
	mock := &mockS3Client{
		ListObjectsV2Func: func(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			calls++
			assert.Equal(t, "demo", aws.ToString(in.Bucket))
			if in.ContinuationToken == nil {
				return &s3.ListObjectsV2Output{
					Contents: []types.Object{
						{Key: aws.String("a/1.txt"), Size: aws.Int64(3), ETag: aws.String("\"e1\"")},
					},
					IsTruncated:           aws.Bool(true),
					NextContinuationToken: aws.String("next"),
				}, nil
			}
			assert.Equal(t, "next", aws.ToString(in.ContinuationToken))
			return &s3.ListObjectsV2Output{
				Contents: []types.Object{
					{Key: aws.String("b/3.txt"), Size: aws.Int64(5), ETag: aws.String("\"e3\"")},
				},
				IsTruncated: aws.Bool(false),
			}, nil
		},
	}

	svr := NewWithClient(mock, nil)
	objects, err := svr.ListObjects(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, objects, 2)
	assert.Equal(t, "a/1.txt", objects[0].Key)
	assert.Equal(t, "e1", objects[0].ETag)
	assert.Equal(t, int64(5), objects[1].Size)
}

func TestListObjectsError(t *testing.T) {
	mock := &mockS3Client{
		ListObjectsV2Func: func(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			return nil, &types.NoSuchBucket{}
		},
	}
	_, err := NewWithClient(mock, nil).ListObjects(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, server.IsNotFound(err))
}

func TestGetObjectWritesFile(t *testing.T) {
	mock := &mockS3Client{
		GetObjectFunc: func(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			assert.Equal(t, "a/1.txt", aws.ToString(in.Key))
			return &s3.GetObjectOutput{
				Body:          io.NopCloser(strings.NewReader("hello")),
				ContentLength: aws.Int64(5),
			}, nil
		},
	}

	dest := filepath.Join(t.TempDir(), "a", "1.txt")
	err := NewWithClient(mock, nil).GetObject(context.Background(), "demo", "a/1.txt", dest)
	require.NoError(t, err)

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestGetObjectBodyFailureIsTransient(t *testing.T) {
	mock := &mockS3Client{
		GetObjectFunc: func(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			return &s3.GetObjectOutput{Body: io.NopCloser(failingReader{})}, nil
		},
	}

	dest := filepath.Join(t.TempDir(), "x.txt")
	err := NewWithClient(mock, nil).GetObject(context.Background(), "demo", "x.txt", dest)
	require.Error(t, err)
	assert.True(t, server.IsTransient(err))
	assert.NoFileExists(t, dest)
}

type cancelledReader struct {
	err error
}

func (r cancelledReader) Read([]byte) (int, error) {
	return 0, r.err
}

func TestGetObjectCancelledBodyIsNotTransient(t *testing.T) {
	for _, cause := range []error{context.Canceled, context.DeadlineExceeded} {
		mock := &mockS3Client{
			GetObjectFunc: func(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				return &s3.GetObjectOutput{Body: io.NopCloser(cancelledReader{err: cause})}, nil
			},
		}

		dest := filepath.Join(t.TempDir(), "x.txt")
		err := NewWithClient(mock, nil).GetObject(context.Background(), "demo", "x.txt", dest)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, server.KindOther, server.KindOf(err))
		assert.NoFileExists(t, dest)
	}
}

func TestGetObjectNotFound(t *testing.T) {
	mock := &mockS3Client{
		GetObjectFunc: func(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			return nil, &types.NoSuchKey{}
		},
	}

	err := NewWithClient(mock, nil).GetObject(context.Background(), "demo", "gone", filepath.Join(t.TempDir(), "gone"))
	assert.ErrorIs(t, err, server.ErrObjectNotFound)
}

func TestPutObject(t *testing.T) {
	src := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(src, []byte("plain text body"), 0644))

	var gotBody, gotType string
	var gotLen int64
	mock := &mockS3Client{
		PutObjectFunc: func(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			assert.Equal(t, "demo", aws.ToString(in.Bucket))
			assert.Equal(t, "x/note.txt", aws.ToString(in.Key))
			b, err := io.ReadAll(in.Body)
			require.NoError(t, err)
			gotBody = string(b)
			gotType = aws.ToString(in.ContentType)
			gotLen = aws.ToInt64(in.ContentLength)
			return &s3.PutObjectOutput{}, nil
		},
	}

	err := NewWithClient(mock, nil).PutObject(context.Background(), "demo", "x/note.txt", src)
	require.NoError(t, err)
	assert.Equal(t, "plain text body", gotBody)
	assert.Equal(t, int64(len("plain text body")), gotLen)
	assert.True(t, strings.HasPrefix(gotType, "text/plain"), gotType)
}

func TestPutObjectMissingFile(t *testing.T) {
	mock := &mockS3Client{
		PutObjectFunc: func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			t.Fatal("PutObject must not be called")
			return nil, nil
		},
	}
	err := NewWithClient(mock, nil).PutObject(context.Background(), "demo", "k", filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHeadAndRemove(t *testing.T) {
	removed := ""
	mock := &mockS3Client{
		HeadObjectFunc: func(context.Context, *s3.HeadObjectInput, ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
			return &s3.HeadObjectOutput{ContentLength: aws.Int64(9), ETag: aws.String("\"abc\"")}, nil
		},
		DeleteObjectFunc: func(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
			removed = aws.ToString(in.Key)
			return &s3.DeleteObjectOutput{}, nil
		},
	}
	svr := NewWithClient(mock, nil)

	obj, err := svr.HeadObject(context.Background(), "demo", "k")
	require.NoError(t, err)
	assert.Equal(t, server.Object{Key: "k", Size: 9, ETag: "abc"}, obj)

	require.NoError(t, svr.RemoveObject(context.Background(), "demo", "k"))
	assert.Equal(t, "k", removed)
}

func responseError(status int) error {
	return &smithyhttp.ResponseError{
		Response: &smithyhttp.Response{Response: &http.Response{StatusCode: status}},
		Err:      errors.New("http error"),
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want server.Kind
	}{
		{"sdk retries exhausted", &retry.MaxAttemptsError{Attempt: 3, Err: errors.New("dial tcp: i/o timeout")}, server.KindTransient},
		{"no such key", &types.NoSuchKey{}, server.KindNotFound},
		{"head not found", &types.NotFound{}, server.KindNotFound},
		{"generic NoSuchKey code", &smithy.GenericAPIError{Code: "NoSuchKey"}, server.KindNotFound},
		{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, server.KindTransient},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, server.KindOther},
		{"http 404", responseError(http.StatusNotFound), server.KindNotFound},
		{"http 503", responseError(http.StatusServiceUnavailable), server.KindTransient},
		{"http 403", responseError(http.StatusForbidden), server.KindOther},
		{"plain", errors.New("boom"), server.KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}
