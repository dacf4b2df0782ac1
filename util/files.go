package util

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
)

func RandString(size int) string {
	b := make([]byte, (size+1)/2)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)[:size]
}

func RandFile(fileName string, size int) {
	_ = os.MkdirAll(filepath.Dir(fileName), 0755)
	f, _ := os.OpenFile(fileName, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
	defer func() {
		_ = f.Close()
	}()
	_, _ = f.WriteString(RandString(size))
}

func RandDir(dir string, size int, fileNames ...string) {
	_ = os.MkdirAll(dir, 0755)
	wg := sync.WaitGroup{}

	for _, fileName := range fileNames {
		fileName := fileName
		wg.Add(1)
		go func() {
			RandFile(filepath.Join(dir, fileName), size)
			wg.Done()
		}()
	}
	wg.Wait()
}
