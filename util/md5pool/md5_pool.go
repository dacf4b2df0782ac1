// Package md5pool recycles MD5 hashers for small, single-part checksums.
package md5pool

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
	"sync"
)

var p = sync.Pool{
	New: func() any {
		return md5.New()
	},
}

func New() hash.Hash {
	return p.Get().(hash.Hash)
}

func Put(h hash.Hash) {
	h.Reset()
	p.Put(h)
}

// Sum returns the hex MD5 of everything read from r.
func Sum(r io.Reader) (string, error) {
	h := New()
	defer Put(h)
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
