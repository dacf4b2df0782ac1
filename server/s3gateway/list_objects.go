package s3gateway

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hitminer/bucket-sync/server"
	"github.com/hitminer/bucket-sync/util"
)

func (svr *S3Server) ListObjects(ctx context.Context, bucket string) ([]server.Object, error) {
	var objects []server.Object
	paginator := s3.NewListObjectsV2Paginator(svr.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, server.NewBucketError("list", bucket, classify(err), err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, server.Object{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				ETag:         util.TrimEtag(aws.ToString(obj.ETag)),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	return objects, nil
}
