// Package memgateway is an in-memory server.ObjectStore with scripted
// failures, for exercising sync logic without a network.
package memgateway

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/hitminer/bucket-sync/files"
	"github.com/hitminer/bucket-sync/server"
	"github.com/hitminer/bucket-sync/util/md5pool"
)

type object struct {
	data    []byte
	etag    string
	modTime time.Time
}

type MemServer struct {
	mu       sync.Mutex
	buckets  map[string]map[string]object
	failures map[string][]error
	calls    map[string]int
}

var _ server.ObjectStore = (*MemServer)(nil)

func NewMemServer() *MemServer {
	return &MemServer{
		buckets:  make(map[string]map[string]object),
		failures: make(map[string][]error),
		calls:    make(map[string]int),
	}
}

// MakeBucket creates an empty bucket.
func (svr *MemServer) MakeBucket(bucket string) {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	if _, ok := svr.buckets[bucket]; !ok {
		svr.buckets[bucket] = make(map[string]object)
	}
}

// Put stores data under bucket/key, creating the bucket if needed.
func (svr *MemServer) Put(bucket, key string, data []byte) {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	svr.put(bucket, key, data)
}

func (svr *MemServer) put(bucket, key string, data []byte) {
	b, ok := svr.buckets[bucket]
	if !ok {
		b = make(map[string]object)
		svr.buckets[bucket] = b
	}
	etag, _ := md5pool.Sum(bytes.NewReader(data))
	b[key] = object{data: append([]byte(nil), data...), etag: etag, modTime: time.Now()}
}

// Data returns the stored content of bucket/key.
func (svr *MemServer) Data(bucket, key string) ([]byte, bool) {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	obj, ok := svr.buckets[bucket][key]
	return obj.data, ok
}

// Keys returns the sorted keys of bucket.
func (svr *MemServer) Keys(bucket string) []string {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	keys := make([]string, 0, len(svr.buckets[bucket]))
	for k := range svr.buckets[bucket] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fail queues errs to be returned, in order, by the next calls of op on key
// ("list" uses the bucket name as key). Each queued error is consumed once.
func (svr *MemServer) Fail(op, key string, errs ...error) {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	svr.failures[op+":"+key] = append(svr.failures[op+":"+key], errs...)
}

// Calls reports how many times op was invoked on key.
func (svr *MemServer) Calls(op, key string) int {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	return svr.calls[op+":"+key]
}

// TotalCalls reports how many times op was invoked on any key.
func (svr *MemServer) TotalCalls(op string) int {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	n := 0
	for k, v := range svr.calls {
		if len(k) > len(op) && k[:len(op)+1] == op+":" {
			n += v
		}
	}
	return n
}

func (svr *MemServer) enter(op, key string) error {
	id := op + ":" + key
	svr.calls[id]++
	if queued := svr.failures[id]; len(queued) > 0 {
		svr.failures[id] = queued[1:]
		return queued[0]
	}
	return nil
}

func (svr *MemServer) ListObjects(ctx context.Context, bucket string) ([]server.Object, error) {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	if err := svr.enter("list", bucket); err != nil {
		return nil, err
	}
	b, ok := svr.buckets[bucket]
	if !ok {
		return nil, server.NewBucketError("list", bucket, server.KindNotFound, errors.New("NoSuchBucket"))
	}
	objects := make([]server.Object, 0, len(b))
	for k, obj := range b {
		objects = append(objects, server.Object{Key: k, Size: int64(len(obj.data)), ETag: obj.etag, LastModified: obj.modTime})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

func (svr *MemServer) lookup(op, bucket, key string) (object, error) {
	if err := svr.enter(op, key); err != nil {
		return object{}, err
	}
	obj, ok := svr.buckets[bucket][key]
	if !ok {
		return object{}, server.NewObjectError(op, bucket, key, server.KindNotFound, errors.New("NoSuchKey"))
	}
	return obj, nil
}

func (svr *MemServer) HeadObject(ctx context.Context, bucket, key string) (server.Object, error) {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	obj, err := svr.lookup("head", bucket, key)
	if err != nil {
		return server.Object{}, err
	}
	return server.Object{Key: key, Size: int64(len(obj.data)), ETag: obj.etag, LastModified: obj.modTime}, nil
}

func (svr *MemServer) GetObject(ctx context.Context, bucket, key, localPath string) error {
	svr.mu.Lock()
	obj, err := svr.lookup("get", bucket, key)
	svr.mu.Unlock()
	if err != nil {
		return err
	}
	if err := files.WriteFileAtomic(localPath, obj.data); err != nil {
		return server.NewObjectError("get", bucket, key, server.KindOther, err)
	}
	return nil
}

func (svr *MemServer) PutObject(ctx context.Context, bucket, key, localPath string) error {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	if err := svr.enter("put", key); err != nil {
		return err
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return server.NewObjectError("put", bucket, key, server.KindOther, err)
	}
	svr.put(bucket, key, data)
	return nil
}

func (svr *MemServer) RemoveObject(ctx context.Context, bucket, key string) error {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	if err := svr.enter("remove", key); err != nil {
		return err
	}
	delete(svr.buckets[bucket], key)
	return nil
}
