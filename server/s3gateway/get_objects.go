package s3gateway

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hitminer/bucket-sync/files"
	"github.com/hitminer/bucket-sync/server"
)

func (svr *S3Server) GetObject(ctx context.Context, bucket, key, localPath string) error {
	out, err := svr.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return objectError("get", bucket, key, err)
	}
	defer func() {
		_ = out.Body.Close()
	}()

	w, err := files.NewAtomicWriter(localPath)
	if err != nil {
		return objectError("get", bucket, key, err)
	}
	body := svr.bar.NewBarReader(out.Body, aws.ToInt64(out.ContentLength), "download: "+key)
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Abort()
		// a body cut off mid-stream is worth another attempt, a cancelled one is not
		kind := server.KindTransient
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			kind = server.KindOther
		}
		return server.NewObjectError("get", bucket, key, kind, fmt.Errorf("read body: %w", err))
	}
	if err := w.Commit(); err != nil {
		return objectError("get", bucket, key, err)
	}
	return nil
}
