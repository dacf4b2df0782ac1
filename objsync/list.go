package objsync

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hitminer/bucket-sync/files"
	"github.com/hitminer/bucket-sync/server"
	"github.com/hitminer/bucket-sync/util"
)

// ListRemoteObjects returns every key in bucket except directory markers.
func (e *Engine) ListRemoteObjects(ctx context.Context, bucket string) ([]string, error) {
	objects, err := e.Objects(ctx, bucket)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// Objects is ListRemoteObjects with the object metadata.
func (e *Engine) Objects(ctx context.Context, bucket string) ([]server.Object, error) {
	objects, err := e.store.ListObjects(ctx, bucket)
	if err != nil {
		return nil, err
	}
	kept := objects[:0]
	for _, obj := range objects {
		if util.KeyBase(obj.Key) == "" {
			continue
		}
		kept = append(kept, obj)
	}
	return kept, nil
}

// ListLocalFiles returns every file below root. Directories are not listed.
func (e *Engine) ListLocalFiles(root string) ([]string, error) {
	return files.ListFiles(root)
}

// localKeys maps the key-equivalent of every file below root to its path.
func (e *Engine) localKeys(root string) (map[string]string, []string, error) {
	paths, err := e.ListLocalFiles(root)
	if err != nil {
		return nil, nil, err
	}
	byKey := make(map[string]string, len(paths))
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil, nil, err
		}
		key := filepath.ToSlash(rel)
		byKey[key] = p
		keys = append(keys, key)
	}
	return byKey, keys, nil
}

// matchEndpoint keeps the keys containing endpoint anywhere.
func matchEndpoint(keys []string, endpoint string) []string {
	var matched []string
	for _, k := range keys {
		if strings.Contains(k, endpoint) {
			matched = append(matched, k)
		}
	}
	return matched
}

// localPath is where key lives below root. Keys that would resolve outside
// root, or to root itself, are rejected.
func localPath(root, key string) (string, error) {
	rel := filepath.FromSlash(key)
	if !filepath.IsLocal(rel) || filepath.Clean(rel) == "." {
		return "", fmt.Errorf("%w: key %q does not resolve below %s", ErrPrecondition, key, root)
	}
	return filepath.Join(root, rel), nil
}
