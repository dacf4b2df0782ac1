// Package zipper expands and builds zip archives on the local filesystem.
package zipper

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

const Ext = ".zip"

// IsArchive reports whether name carries the zip extension.
func IsArchive(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), Ext)
}

// ExtractDir is the directory Unzip expands path into by default.
func ExtractDir(path string) string {
	return path[:len(path)-len(filepath.Ext(path))]
}

// Unzip expands the archive at path into extractDir (the archive path without
// its extension when empty) and returns that directory. The archive is
// removed afterwards when deleteZip is set. On failure a directory created
// by Unzip is removed again.
func Unzip(path, extractDir string, deleteZip bool) (string, error) {
	if extractDir == "" {
		extractDir = ExtractDir(path)
	}
	extractDir = filepath.Clean(extractDir)

	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open archive %s: %w", path, err)
	}
	_, statErr := os.Stat(extractDir)
	created := errors.Is(statErr, fs.ErrNotExist)
	if err := os.MkdirAll(extractDir, 0755); err != nil {
		_ = r.Close()
		return "", err
	}
	for _, f := range r.File {
		if err := extract(f, extractDir); err != nil {
			_ = r.Close()
			if created {
				_ = os.RemoveAll(extractDir)
			}
			return "", fmt.Errorf("extract %s from %s: %w", f.Name, path, err)
		}
	}
	if err := r.Close(); err != nil {
		return "", err
	}

	if deleteZip {
		if err := os.Remove(path); err != nil {
			return "", err
		}
	}
	return extractDir, nil
}

func extract(f *zip.File, dir string) error {
	target := filepath.Join(dir, filepath.FromSlash(f.Name))
	if target != dir && !strings.HasPrefix(target, dir+string(os.PathSeparator)) {
		return fmt.Errorf("entry escapes %s", dir)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = rc.Close()
	}()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// UnzipAll expands every archive found below dir next to itself and returns
// the directories created.
func UnzipAll(dir string, deleteZips bool) ([]string, error) {
	var archives []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && IsArchive(d.Name()) {
			archives = append(archives, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(archives))
	for _, a := range archives {
		out, err := Unzip(a, "", deleteZips)
		if err != nil {
			return dirs, err
		}
		dirs = append(dirs, out)
	}
	return dirs, nil
}

// ZipDir archives the contents of dir into dir+".zip", entries relative to dir.
func ZipDir(dir string) (string, error) {
	dir = filepath.Clean(dir)
	zipPath := dir + Ext

	out, err := os.Create(zipPath)
	if err != nil {
		return "", err
	}
	zw := zip.NewWriter(out)

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if d.IsDir() {
			hdr.Name += "/"
			_, err = zw.CreateHeader(hdr)
			return err
		}
		hdr.Method = zip.Deflate
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() {
			_ = f.Close()
		}()
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		_ = zw.Close()
		_ = out.Close()
		_ = os.Remove(zipPath)
		return "", err
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return zipPath, nil
}
