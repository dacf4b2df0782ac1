package objsync

import (
	"context"
	"io"
	"sync"

	"github.com/hitminer/bucket-sync/util/manager"
)

func (e *Engine) Delete(ctx context.Context, bucket, key string) error {
	if err := e.store.RemoveObject(ctx, bucket, key); err != nil {
		return err
	}
	e.log.Info().Str("bucket", bucket).Str("key", key).Msg("object removed")
	return nil
}

// DeleteAll removes every listed object of bucket, running up to the engine's
// concurrency removals at once. It returns the removed keys; failures are
// joined into the error and do not stop the remaining removals.
func (e *Engine) DeleteAll(ctx context.Context, bucket string) ([]string, error) {
	keys, err := e.ListRemoteObjects(ctx, bucket)
	if err != nil {
		return nil, err
	}
	e.bar.NewCntBar(int64(len(keys)), "remove")
	defer e.bar.Wait()

	var mu sync.Mutex
	removed := make([]string, 0, len(keys))
	mg := manager.NewManager(ctx, e.concurrency)
	for _, key := range keys {
		ok := mg.Go(func() error {
			if err := e.store.RemoveObject(ctx, bucket, key); err != nil {
				return err
			}
			_, _ = io.WriteString(e.bar, key)
			mu.Lock()
			removed = append(removed, key)
			mu.Unlock()
			return nil
		})
		if !ok {
			mg.AppendError(ctx.Err())
			break
		}
	}
	err = mg.Finish()
	e.log.Info().Str("bucket", bucket).Int("removed", len(removed)).Int("listed", len(keys)).Msg("bucket emptied")
	return removed, err
}
