package s3gateway

import (
	"context"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
)

// barSeeker reports reads through the progress bar while keeping the file
// seekable, which the SDK needs to sign and rewind the payload.
type barSeeker struct {
	io.Reader
	io.Seeker
}

func (svr *S3Server) PutObject(ctx context.Context, bucket, key, localPath string) error {
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

	_, err = svr.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          barSeeker{Reader: svr.bar.NewBarReader(f, stat.Size(), "upload: "+key), Seeker: f},
		ContentLength: aws.Int64(stat.Size()),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return objectError("put", bucket, key, err)
	}
	return nil
}
