package s3gateway

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hitminer/bucket-sync/server"
	"github.com/hitminer/bucket-sync/util"
)

func (svr *S3Server) HeadObject(ctx context.Context, bucket, key string) (server.Object, error) {
	out, err := svr.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return server.Object{}, objectError("head", bucket, key, err)
	}
	return server.Object{
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		ETag:         util.TrimEtag(aws.ToString(out.ETag)),
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}
