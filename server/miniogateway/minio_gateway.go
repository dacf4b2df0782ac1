// Package miniogateway implements server.ObjectStore with minio-go.
package miniogateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hitminer/bucket-sync/files"
	"github.com/hitminer/bucket-sync/server"
	"github.com/hitminer/bucket-sync/util"
	"github.com/hitminer/bucket-sync/util/multibar"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint string
	Region   string
	Secure   bool
}

type MinioServer struct {
	client *minio.Client
	bar    multibar.MultiBar
}

var _ server.ObjectStore = (*MinioServer)(nil)

// NewMinioServer connects to cfg.Endpoint. Keys are read from the
// environment or the shared AWS credentials file.
func NewMinioServer(cfg Config, bar multibar.MultiBar) (*MinioServer, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint must be provided")
	}
	if bar == nil {
		bar = &multibar.DefaultBar{}
	}
	creds := credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvMinio{},
		&credentials.EnvAWS{},
		&credentials.FileAWSCredentials{},
	})
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return &MinioServer{
		client: client,
		bar:    bar,
	}, nil
}

func (svr *MinioServer) ListObjects(ctx context.Context, bucket string) ([]server.Object, error) {
	var objects []server.Object
	for info := range svr.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			return nil, server.NewBucketError("list", bucket, classify(info.Err), info.Err)
		}
		objects = append(objects, toObject(info))
	}
	return objects, nil
}

func (svr *MinioServer) HeadObject(ctx context.Context, bucket, key string) (server.Object, error) {
	info, err := svr.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return server.Object{}, objectError("head", bucket, key, err)
	}
	return toObject(info), nil
}

func (svr *MinioServer) GetObject(ctx context.Context, bucket, key, localPath string) error {
	obj, err := svr.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return objectError("get", bucket, key, err)
	}
	defer func() {
		_ = obj.Close()
	}()
	// GetObject is lazy; Stat surfaces a missing key before anything is written.
	info, err := obj.Stat()
	if err != nil {
		return objectError("get", bucket, key, err)
	}

	w, err := files.NewAtomicWriter(localPath)
	if err != nil {
		return objectError("get", bucket, key, err)
	}
	if _, err := io.Copy(w, svr.bar.NewBarReader(obj, info.Size, "download: "+key)); err != nil {
		_ = w.Abort()
		return objectError("get", bucket, key, err)
	}
	if err := w.Commit(); err != nil {
		return objectError("get", bucket, key, err)
	}
	return nil
}

func (svr *MinioServer) PutObject(ctx context.Context, bucket, key, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return objectError("put", bucket, key, err)
	}
	defer func() {
		_ = f.Close()
	}()
	stat, err := f.Stat()
	if err != nil {
		return objectError("put", bucket, key, err)
	}
	contentType := "application/octet-stream"
	if mt, err := mimetype.DetectReader(f); err == nil {
		contentType = mt.String()
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return objectError("put", bucket, key, err)
	}

	_, err = svr.client.PutObject(ctx, bucket, key,
		svr.bar.NewBarReader(f, stat.Size(), "upload: "+key), stat.Size(),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return objectError("put", bucket, key, err)
	}
	return nil
}

func (svr *MinioServer) RemoveObject(ctx context.Context, bucket, key string) error {
	if err := svr.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return objectError("remove", bucket, key, err)
	}
	return nil
}

func toObject(info minio.ObjectInfo) server.Object {
	return server.Object{
		Key:          info.Key,
		Size:         info.Size,
		ETag:         util.TrimEtag(info.ETag),
		LastModified: info.LastModified,
	}
}

func classify(err error) server.Kind {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return server.KindNotFound
	case "SlowDown", "RequestTimeout", "InternalError", "ServiceUnavailable", "XMinioServerNotInitialized":
		return server.KindTransient
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return server.KindNotFound
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= http.StatusInternalServerError:
		return server.KindTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return server.KindTransient
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return server.KindTransient
	}
	return server.KindOther
}

func objectError(op, bucket, key string, err error) error {
	return server.NewObjectError(op, bucket, key, classify(err), err)
}
