package util

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/go-playground/assert/v2"
	md5simd "github.com/minio/md5-simd"
)

func TestMatchEtag(t *testing.T) {
	srv := md5simd.NewServer()
	defer srv.Close()

	data := []byte(RandString(1024))
	sum := md5.Sum(data)
	etag := hex.EncodeToString(sum[:])

	assert.Equal(t, MatchEtag(srv, bytes.NewReader(data), int64(len(data)), etag), true)
	assert.Equal(t, MatchEtag(srv, bytes.NewReader(data), int64(len(data)), HTTPEtag(etag)), true)
	assert.Equal(t, MatchEtag(srv, bytes.NewReader([]byte("other")), 5, etag), false)
}

func TestMatchEtagMultipart(t *testing.T) {
	srv := md5simd.NewServer()
	defer srv.Close()

	data := []byte(RandString(minChunkSize + 100))
	first := md5.Sum(data[:minChunkSize])
	second := md5.Sum(data[minChunkSize:])
	whole := md5.Sum(append(first[:], second[:]...))
	etag := hex.EncodeToString(whole[:]) + "-2"

	assert.Equal(t, MatchEtag(srv, bytes.NewReader(data), int64(len(data)), etag), true)
	assert.Equal(t, MatchEtag(srv, bytes.NewReader(data[:minChunkSize]), minChunkSize, etag), false)
}
