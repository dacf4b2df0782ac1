// Package multibar abstracts the progress reporting of transfers so the
// sync engine can run with or without a terminal attached.
package multibar

import "io"

// MultiBar tracks one item counter plus one byte bar per transfer.
// Every Write on the bar advances the item counter by one.
type MultiBar interface {
	io.Writer
	NewCntBar(size int64, description string)
	SetPrint(print bool)
	NewBarReader(reader io.Reader, size int64, description string) io.Reader
	Wait()
}
