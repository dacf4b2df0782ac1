package s3gateway

import (
	"errors"
	"net"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/hitminer/bucket-sync/server"
)

// classify maps SDK failures onto server.Kind.
func classify(err error) server.Kind {
	var maxErr *retry.MaxAttemptsError
	if errors.As(err, &maxErr) {
		return server.KindTransient
	}

	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) || errors.As(err, &noSuchBucket) {
		return server.KindNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return server.KindNotFound
		case "SlowDown", "RequestTimeout", "RequestTimeoutException", "InternalError", "ServiceUnavailable", "Throttling":
			return server.KindTransient
		}
	}

	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		switch status := respErr.HTTPStatusCode(); {
		case status == http.StatusNotFound:
			return server.KindNotFound
		case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
			return server.KindTransient
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return server.KindTransient
	}
	return server.KindOther
}

func objectError(op, bucket, key string, err error) error {
	return server.NewObjectError(op, bucket, key, classify(err), err)
}
