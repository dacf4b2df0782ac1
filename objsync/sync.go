package objsync

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hitminer/bucket-sync/server"
	"github.com/hitminer/bucket-sync/zipper"
)

// SyncMany transfers the listed items in order.
//
// Downloading, items are keys resolved against root. Keys already present
// locally are skipped unless overwrite is set, and so are missing keys when
// the engine ignores them. The returned paths are the ones actually produced.
//
// Uploading, items are local paths whose keys are derived from the bucket
// directory in their path. Every item is sent and every key is returned.
//
// On error the items completed so far are returned alongside it.
func (e *Engine) SyncMany(ctx context.Context, dir Direction, bucket string, items []string, root string, overwrite bool) ([]string, error) {
	e.bar.NewCntBar(int64(len(items)), dir.String())
	defer e.bar.Wait()

	done := make([]string, 0, len(items))
	for _, item := range items {
		t := Task{Direction: dir, Bucket: bucket, Source: item}
		if dir == Download {
			t.Destination = root
			t.Overwrite = overwrite
			t.Archive = e.decompress
			t.IgnoreMissing = e.ignoreMissing
		} else {
			t.Overwrite = true
		}

		res, err := e.TransferOne(ctx, t)
		if err != nil {
			return done, err
		}
		_, _ = io.WriteString(e.bar, item)
		if res.Skipped {
			continue
		}
		done = append(done, res.Destination)
	}
	e.log.Info().
		Str("direction", dir.String()).
		Str("bucket", bucket).
		Int("items", len(items)).
		Int("transferred", len(done)).
		Msg("sync finished")
	return done, nil
}

// SyncEndpoint mirrors the part of a bucket selected by endpoint.
//
// Candidates are the remote keys (download) or the root-relative local paths
// (upload) that contain endpoint. A candidate is transferred when overwrite
// is set or when the other side does not have it yet. An endpoint matching
// nothing is reported as ErrConfiguration.
func (e *Engine) SyncEndpoint(ctx context.Context, dir Direction, bucket, root, endpoint string, overwrite bool) error {
	if err := os.MkdirAll(root, 0755); err != nil {
		return err
	}
	if dir == Upload {
		return e.pushEndpoint(ctx, bucket, root, endpoint, overwrite)
	}
	return e.pullEndpoint(ctx, bucket, root, endpoint, overwrite)
}

func (e *Engine) pullEndpoint(ctx context.Context, bucket, root, endpoint string, overwrite bool) error {
	local, _, err := e.localKeys(root)
	if err != nil {
		return err
	}
	remote, err := e.Objects(ctx, bucket)
	if err != nil {
		return err
	}
	candidates := make([]server.Object, 0, len(remote))
	for _, obj := range remote {
		if strings.Contains(obj.Key, endpoint) {
			candidates = append(candidates, obj)
		}
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w: no object in bucket %q matches endpoint %q", ErrConfiguration, bucket, endpoint)
	}

	e.bar.NewCntBar(int64(len(candidates)), "download")
	defer e.bar.Wait()

	var transferred int
	var bytes uint64
	for _, obj := range candidates {
		if !overwrite && e.present(local, root, obj.Key) {
			_, _ = io.WriteString(e.bar, obj.Key)
			continue
		}
		res, err := e.TransferOne(ctx, Task{
			Direction:     Download,
			Bucket:        bucket,
			Source:        obj.Key,
			Destination:   root,
			Overwrite:     true,
			Archive:       e.decompress,
			IgnoreMissing: e.ignoreMissing,
		})
		if err != nil {
			return err
		}
		_, _ = io.WriteString(e.bar, obj.Key)
		if !res.Skipped {
			transferred++
			bytes += uint64(obj.Size)
		}
	}
	e.log.Info().
		Str("bucket", bucket).
		Str("endpoint", endpoint).
		Int("candidates", len(candidates)).
		Int("transferred", transferred).
		Str("size", humanize.IBytes(bytes)).
		Msg("download finished")
	return nil
}

// present reports whether key already has a local counterpart. With
// decompression on, an archive is present once its expanded directory is.
func (e *Engine) present(local map[string]string, root, key string) bool {
	if _, ok := local[key]; ok {
		return true
	}
	if !e.decompress || !zipper.IsArchive(key) {
		return false
	}
	path, err := localPath(root, key)
	return err == nil && isDir(zipper.ExtractDir(path))
}

func (e *Engine) pushEndpoint(ctx context.Context, bucket, root, endpoint string, overwrite bool) error {
	local, keys, err := e.localKeys(root)
	if err != nil {
		return err
	}
	candidates := matchEndpoint(keys, endpoint)
	if len(candidates) == 0 {
		return fmt.Errorf("%w: no file below %s matches endpoint %q", ErrConfiguration, root, endpoint)
	}
	remoteKeys, err := e.ListRemoteObjects(ctx, bucket)
	if err != nil {
		return err
	}
	remote := make(map[string]struct{}, len(remoteKeys))
	for _, k := range remoteKeys {
		remote[k] = struct{}{}
	}

	e.bar.NewCntBar(int64(len(candidates)), "upload")
	defer e.bar.Wait()

	var transferred int
	for _, key := range candidates {
		if _, ok := remote[key]; ok && !overwrite {
			_, _ = io.WriteString(e.bar, key)
			continue
		}
		// keys come from the root-relative path, not from a bucket directory
		if _, err := e.TransferOne(ctx, Task{
			Direction:   Upload,
			Bucket:      bucket,
			Source:      local[key],
			Destination: key,
			Overwrite:   true,
		}); err != nil {
			return err
		}
		_, _ = io.WriteString(e.bar, key)
		transferred++
	}
	e.log.Info().
		Str("bucket", bucket).
		Str("endpoint", endpoint).
		Int("candidates", len(candidates)).
		Int("transferred", transferred).
		Msg("upload finished")
	return nil
}
