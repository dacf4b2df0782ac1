package objsync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/hitminer/bucket-sync/server"
	"github.com/hitminer/bucket-sync/zipper"
)

// Task describes one transfer.
//
// For a Download, Source is the object key and Destination the local root the
// key is resolved against. For an Upload, Source is the local file and
// Destination the key; an empty Destination derives the key from the bucket
// directory in Source.
type Task struct {
	Direction     Direction
	Bucket        string
	Source        string
	Destination   string
	Overwrite     bool
	Archive       bool
	IgnoreMissing bool
}

// Result is the outcome of a Task. Destination is the produced local path
// (the expanded directory for archives) or the written key.
type Result struct {
	Direction   Direction
	Source      string
	Destination string
	Skipped     bool
	Attempts    int
}

// TransferOne runs a single transfer with the bounded retry policy.
func (e *Engine) TransferOne(ctx context.Context, t Task) (Result, error) {
	if t.Direction == Upload {
		return e.upload(ctx, t)
	}
	return e.download(ctx, t)
}

func (e *Engine) download(ctx context.Context, t Task) (Result, error) {
	res := Result{Direction: Download, Source: t.Source}
	dest, err := localPath(t.Destination, t.Source)
	if err != nil {
		return res, err
	}
	res.Destination = dest
	if !t.Overwrite && populated(res.Destination, t.Archive) {
		res.Skipped = true
		return res, nil
	}
	if err := os.MkdirAll(filepath.Dir(res.Destination), 0755); err != nil {
		return res, err
	}

	res.Attempts, err = e.withRetry(t, func() error {
		return e.store.GetObject(ctx, t.Bucket, t.Source, res.Destination)
	})
	if err != nil {
		if t.IgnoreMissing && server.IsNotFound(err) {
			e.log.Warn().Str("bucket", t.Bucket).Str("key", t.Source).Msg("object not found, skipping")
			res.Skipped = true
			return res, nil
		}
		return res, err
	}

	if t.Archive && zipper.IsArchive(res.Destination) {
		dir, err := zipper.Unzip(res.Destination, "", true)
		if err != nil {
			// a leftover archive would count as synced on the next run
			_ = os.Remove(res.Destination)
			return res, fmt.Errorf("expand %s: %w", res.Destination, err)
		}
		res.Destination = dir
	}
	e.log.Debug().Str("key", t.Source).Str("path", res.Destination).Int("attempts", res.Attempts).Msg("downloaded")
	return res, nil
}

func (e *Engine) upload(ctx context.Context, t Task) (Result, error) {
	res := Result{Direction: Upload, Source: t.Source}
	key := t.Destination
	if key == "" {
		var err error
		if key, err = KeyFromPath(t.Bucket, t.Source); err != nil {
			return res, err
		}
	}

	src := t.Source
	if t.Archive {
		info, err := os.Stat(src)
		if err != nil {
			return res, err
		}
		if info.IsDir() {
			if src, err = zipper.ZipDir(src); err != nil {
				return res, fmt.Errorf("compress %s: %w", t.Source, err)
			}
			defer os.Remove(src)
			key += zipper.Ext
		}
	}
	res.Destination = key

	if !t.Overwrite {
		_, err := e.store.HeadObject(ctx, t.Bucket, key)
		if err == nil {
			res.Skipped = true
			return res, nil
		}
		if !server.IsNotFound(err) {
			return res, err
		}
	}

	var err error
	res.Attempts, err = e.withRetry(t, func() error {
		return e.store.PutObject(ctx, t.Bucket, key, src)
	})
	if err != nil {
		return res, err
	}
	e.log.Debug().Str("path", t.Source).Str("key", key).Int("attempts", res.Attempts).Msg("uploaded")
	return res, nil
}

// withRetry calls fn until it succeeds, fails with a non-transient error or
// the attempt budget is spent. Attempts follow each other immediately.
func (e *Engine) withRetry(t Task, fn func() error) (int, error) {
	attempts := 0
	policy := backoff.WithMaxRetries(&backoff.ZeroBackOff{}, maxAttempts-1)
	err := backoff.Retry(func() error {
		attempts++
		err := fn()
		if err == nil {
			return nil
		}
		if !server.IsTransient(err) {
			return backoff.Permanent(err)
		}
		e.log.Debug().Err(err).Str("source", t.Source).Int("attempt", attempts).Msg("transient failure")
		return err
	}, policy)
	if err == nil || !server.IsTransient(err) {
		return attempts, err
	}
	return attempts, &TransferError{
		Direction: t.Direction,
		Bucket:    t.Bucket,
		Source:    t.Source,
		Attempts:  attempts,
		Err:       err,
	}
}

// KeyFromPath derives the object key of a local file from the last path
// component named after the bucket: with bucket "demo", "/data/demo/x/4.txt"
// becomes "x/4.txt".
func KeyFromPath(bucket, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	parts := strings.Split(filepath.ToSlash(abs), "/")
	idx := -1
	for i, p := range parts {
		if p == bucket {
			idx = i
		}
	}
	if bucket == "" || idx < 0 || idx == len(parts)-1 {
		return "", fmt.Errorf("%w: bucket %q is not a directory above %s", ErrPrecondition, bucket, abs)
	}
	return strings.Join(parts[idx+1:], "/"), nil
}

// populated reports whether a download to path would have nothing to do.
// An archive counts as present once its expanded directory exists.
func populated(path string, archive bool) bool {
	if exists(path) {
		return true
	}
	return archive && zipper.IsArchive(path) && isDir(zipper.ExtractDir(path))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
