package objsync

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hitminer/bucket-sync/server"
	"github.com/hitminer/bucket-sync/util"
	md5simd "github.com/minio/md5-simd"
)

type Status int

const (
	OnlyRemote Status = iota
	OnlyLocal
	Modified
)

func (s Status) String() string {
	switch s {
	case OnlyRemote:
		return "remote"
	case OnlyLocal:
		return "local"
	case Modified:
		return "modified"
	}
	return "unknown"
}

type Difference struct {
	Key    string
	Status Status
}

// Diff compares the part of bucket and root selected by endpoint and reports
// every key that a sync in either direction would touch. Nothing is
// transferred. Keys present on both sides are compared by size, then by
// recomputing the remote ETag from the local file.
func (e *Engine) Diff(ctx context.Context, bucket, root, endpoint string) ([]Difference, error) {
	local, _, err := e.localKeys(root)
	if err != nil {
		return nil, err
	}
	objects, err := e.Objects(ctx, bucket)
	if err != nil {
		return nil, err
	}
	remote := make(map[string]server.Object, len(objects))
	for _, obj := range objects {
		if strings.Contains(obj.Key, endpoint) {
			remote[obj.Key] = obj
		}
	}
	for key := range local {
		if !strings.Contains(key, endpoint) {
			delete(local, key)
		}
	}
	if len(remote) == 0 && len(local) == 0 {
		return nil, fmt.Errorf("%w: nothing in bucket %q or below %s matches endpoint %q", ErrConfiguration, bucket, root, endpoint)
	}

	srv := md5simd.NewServer()
	defer srv.Close()

	var diffs []Difference
	for key, obj := range remote {
		path, ok := local[key]
		if !ok {
			diffs = append(diffs, Difference{Key: key, Status: OnlyRemote})
			continue
		}
		same, err := sameContent(srv, path, obj)
		if err != nil {
			return nil, err
		}
		if !same {
			diffs = append(diffs, Difference{Key: key, Status: Modified})
		}
	}
	for key := range local {
		if _, ok := remote[key]; !ok {
			diffs = append(diffs, Difference{Key: key, Status: OnlyLocal})
		}
	}
	sort.Slice(diffs, func(i, j int) bool {
		return diffs[i].Key < diffs[j].Key
	})
	return diffs, nil
}

func sameContent(srv md5simd.Server, path string, obj server.Object) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() != obj.Size {
		return false, nil
	}
	return util.MatchEtag(srv, f, info.Size(), obj.ETag), nil
}
