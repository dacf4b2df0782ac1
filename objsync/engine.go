// Package objsync reconciles a local directory tree (the local bucket) with a
// remote bucket.
//
// The local bucket mirrors the remote one by relative path: the file
// <root>/a/b.txt corresponds to the key "a/b.txt". Every operation takes a
// fresh listing of both sides, works through its items one at a time and
// keeps no state between calls, so re-running an operation is safe.
package objsync

import (
	"github.com/hitminer/bucket-sync/server"
	"github.com/hitminer/bucket-sync/util/multibar"
	"github.com/rs/zerolog"
)

// maxAttempts bounds the tries of a single transfer. Only transient store
// failures are retried and there is no back-off between tries.
const maxAttempts = 3

type Direction int

const (
	Download Direction = iota
	Upload
)

func (d Direction) String() string {
	if d == Upload {
		return "upload"
	}
	return "download"
}

type Engine struct {
	store         server.ObjectStore
	log           zerolog.Logger
	bar           multibar.MultiBar
	concurrency   int
	decompress    bool
	ignoreMissing bool
}

type Option func(*Engine)

func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

func WithBar(bar multibar.MultiBar) Option {
	return func(e *Engine) {
		if bar != nil {
			e.bar = bar
		}
	}
}

// WithConcurrency bounds the parallel removals of DeleteAll.
// Transfers are always sequential.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithDecompress controls whether downloaded .zip objects are expanded in
// place by the sync operations. Enabled by default.
func WithDecompress(decompress bool) Option {
	return func(e *Engine) {
		e.decompress = decompress
	}
}

// WithIgnoreMissing makes the sync operations skip objects that vanish
// between listing and download instead of failing.
func WithIgnoreMissing(ignore bool) Option {
	return func(e *Engine) {
		e.ignoreMissing = ignore
	}
}

func New(store server.ObjectStore, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		log:         zerolog.Nop(),
		bar:         &multibar.DefaultBar{},
		concurrency: 8,
		decompress:  true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With().Str("component", "objsync").Logger()
	return e
}
