package s3gateway

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func (svr *S3Server) RemoveObject(ctx context.Context, bucket, key string) error {
	_, err := svr.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return objectError("remove", bucket, key, err)
	}
	return nil
}
