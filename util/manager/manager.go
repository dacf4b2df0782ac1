// Package manager runs a bounded number of goroutines and joins their errors.
package manager

import (
	"context"
	"errors"
	"sync"
)

type Manager struct {
	ctx     context.Context
	limit   chan struct{}
	wg      *sync.WaitGroup
	errWg   *sync.WaitGroup
	errChan chan error
	err     error
}

func NewManager(ctx context.Context, limit int) *Manager {
	if limit < 1 {
		limit = 1
	}
	mg := &Manager{
		ctx:     ctx,
		limit:   make(chan struct{}, limit),
		wg:      &sync.WaitGroup{},
		errWg:   &sync.WaitGroup{},
		errChan: make(chan error, limit),
		err:     nil,
	}
	mg.errWg.Add(1)
	go func() {
		defer mg.errWg.Done()
		for v := range mg.errChan {
			if v != nil {
				mg.err = errors.Join(mg.err, v)
			}
		}
	}()
	return mg
}

func (mg *Manager) AppendError(err error) {
	mg.errChan <- err
}

// Go runs fn once a slot is free. It returns false without running fn when
// the manager's context is already done.
func (mg *Manager) Go(fn func() error) bool {
	select {
	case mg.limit <- struct{}{}:
	case <-mg.ctx.Done():
		return false
	}
	mg.wg.Add(1)
	go func() {
		defer mg.Done()
		if err := fn(); err != nil {
			mg.AppendError(err)
		}
	}()
	return true
}

func (mg *Manager) Done() {
	<-mg.limit
	mg.wg.Done()
}

func (mg *Manager) Wait() {
	mg.wg.Wait()
}

// Finish waits for every goroutine and returns the joined errors.
// The manager must not be reused afterwards.
func (mg *Manager) Finish() error {
	mg.Wait()
	close(mg.errChan)
	mg.errWg.Wait()
	return mg.err
}
