package multibar

import "io"

// DefaultBar reports nothing.
type DefaultBar struct{}

var _ MultiBar = (*DefaultBar)(nil)

func (b *DefaultBar) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func (b *DefaultBar) NewCntBar(size int64, description string) {}

func (b *DefaultBar) SetPrint(print bool) {}

func (b *DefaultBar) NewBarReader(reader io.Reader, size int64, description string) io.Reader {
	return reader
}

func (b *DefaultBar) Wait() {}
