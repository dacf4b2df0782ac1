package util

import (
	"encoding/hex"
	"io"
	"strings"

	"github.com/hitminer/bucket-sync/util/md5pool"
	md5simd "github.com/minio/md5-simd"
)

const (
	minChunkSize = 5 * 1024 * 1024
	maxChunkNum  = 9000
)

// MatchEtag reports whether the content of r hashes to etag. Multipart etags
// ("<md5 of part md5s>-<n>") are recomputed with the part size the uploader
// would have picked for size.
func MatchEtag(srv md5simd.Server, r io.Reader, size int64, etag string) bool {
	etag = TrimEtag(etag)
	index := strings.Index(etag, "-")
	if index == -1 {
		h := md5pool.New()
		defer md5pool.Put(h)
		if _, err := io.Copy(h, r); err != nil {
			return false
		}
		return etag == hex.EncodeToString(h.Sum(nil))
	}

	etag = etag[:index]
	sum := srv.NewHash()
	defer sum.Close()
	chunkSize := Max(minChunkSize, size/maxChunkNum)
	for offset := int64(0); offset < size; offset = offset + chunkSize {
		part := srv.NewHash()
		_, err := io.Copy(part, io.LimitReader(r, chunkSize))
		if err != nil {
			part.Close()
			return false
		}
		_, _ = sum.Write(part.Sum(nil))
		part.Close()
	}
	return etag == hex.EncodeToString(sum.Sum(nil))
}
