// Package cmdbar renders transfer progress on a terminal with mpb.
package cmdbar

import (
	"io"
	"sync"
	"time"

	"github.com/hitminer/bucket-sync/util/multibar"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type CmdBar struct {
	mu     sync.Mutex
	p      *mpb.Progress
	cntBar *mpb.Bar
	print  bool
}

var _ multibar.MultiBar = (*CmdBar)(nil)

func NewBar(w io.Writer) *CmdBar {
	return &CmdBar{
		p: mpb.New(
			mpb.WithRefreshRate(200*time.Millisecond),
			mpb.WithOutput(w),
		),
		cntBar: nil,
		print:  true,
	}
}

func (b *CmdBar) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cntBar != nil {
		b.cntBar.Increment()
	}
	return len(p), nil
}

func (b *CmdBar) NewCntBar(size int64, description string) {
	bar := b.p.New(size,
		mpb.BarStyle().Rbound("|"),
		mpb.PrependDecorators(
			decor.Name(description, decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Percentage(decor.WC{W: 5}), "done"),
		))
	b.mu.Lock()
	if b.cntBar != nil {
		b.cntBar.Abort(false)
	}
	b.cntBar = bar
	b.mu.Unlock()
}

func (b *CmdBar) SetPrint(print bool) {
	b.mu.Lock()
	b.print = print
	b.mu.Unlock()
}

func (b *CmdBar) NewBarReader(reader io.Reader, size int64, description string) io.Reader {
	b.mu.Lock()
	print := b.print
	b.mu.Unlock()
	if !print || size <= 0 {
		return reader
	}
	bar := b.p.New(size,
		mpb.BarStyle().Rbound("|"),
		mpb.PrependDecorators(
			decor.Name(description, decor.WCSyncSpaceR),
			decor.CountersKibiByte("% .2f / % .2f"),
		),
		mpb.AppendDecorators(
			decor.AverageETA(decor.ET_STYLE_GO),
			decor.Name(" ] "),
			decor.AverageSpeed(decor.UnitKiB, "% .2f"),
		),
		mpb.BarRemoveOnComplete(),
	)
	return bar.ProxyReader(reader)
}

func (b *CmdBar) Wait() {
	// give the renderer one refresh cycle to flush completed bars
	time.Sleep(300 * time.Millisecond)
}
