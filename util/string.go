package util

import "strings"

func TrimEtag(etag string) string {
	etag = strings.TrimPrefix(etag, "\"")
	return strings.TrimSuffix(etag, "\"")
}

func HTTPEtag(etag string) string {
	if !strings.HasPrefix(etag, "\"") {
		etag = "\"" + etag
	}
	if !strings.HasSuffix(etag, "\"") {
		etag = etag + "\""
	}
	return etag
}

// KeyBase returns the final segment of a slash-delimited object key.
// Directory markers ("a/b/") have an empty base.
func KeyBase(key string) string {
	return key[strings.LastIndex(key, "/")+1:]
}

func Max[T ~int | ~int64](a, b T) T {
	if a > b {
		return a
	}
	return b
}
