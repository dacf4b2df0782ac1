package miniogateway

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitminer/bucket-sync/server"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want server.Kind
	}{
		{"no such key", minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}, server.KindNotFound},
		{"bare 404", minio.ErrorResponse{StatusCode: http.StatusNotFound}, server.KindNotFound},
		{"slow down", minio.ErrorResponse{Code: "SlowDown", StatusCode: http.StatusServiceUnavailable}, server.KindTransient},
		{"bad gateway", minio.ErrorResponse{StatusCode: http.StatusBadGateway}, server.KindTransient},
		{"access denied", minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}, server.KindOther},
		{"timeout", fmt.Errorf("dial: %w", timeoutErr{}), server.KindTransient},
		{"short body", io.ErrUnexpectedEOF, server.KindTransient},
		{"plain", errors.New("boom"), server.KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestToObject(t *testing.T) {
	now := time.Now()
	obj := toObject(minio.ObjectInfo{Key: "a/1.txt", Size: 4, ETag: "\"abc\"", LastModified: now})
	assert.Equal(t, server.Object{Key: "a/1.txt", Size: 4, ETag: "abc", LastModified: now}, obj)
}

func TestNewMinioServerRequiresEndpoint(t *testing.T) {
	_, err := NewMinioServer(Config{}, nil)
	require.Error(t, err)

	svr, err := NewMinioServer(Config{Endpoint: "localhost:9000"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, svr)
}
