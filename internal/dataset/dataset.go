// Package dataset handles the raw dataset directory: discovering CSV
// exports and the header rename pre-step the transactions export needs
// before it can be transformed.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes a CSV file in the dataset directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Scan returns CSV files directly under dir, sorted by name.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading dataset dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// IsTransactions reports whether a file name looks like a raw transactions
// export (dataset convention: *_Trans.csv).
func IsTransactions(name string) bool {
	return strings.HasSuffix(name, "_Trans.csv")
}

// IsAccounts reports whether a file name looks like a raw accounts export.
func IsAccounts(name string) bool {
	return strings.HasSuffix(name, "_accounts.csv")
}

// RenameHeaders rewrites the header line of a raw transactions export in
// place: the first ",Account," column becomes ",FromAccount," and the
// second ",ToAccount,". Returns false when the header needed no change.
// The rewrite goes through a temp file and a rename so a failed run never
// leaves a half-written export behind.
func RenameHeaders(path string) (changed bool, err error) {
	src, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	br := bufio.NewReader(src)
	firstLine, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading header of %s: %w", path, err)
	}

	renamed := strings.Replace(firstLine, ",Account,", ",FromAccount,", 1)
	renamed = strings.Replace(renamed, ",Account,", ",ToAccount,", 1)
	if renamed == firstLine {
		return false, nil
	}

	tmpPath := path + ".tmp"
	dst, err := os.Create(tmpPath)
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", tmpPath, err)
	}
	defer func() {
		if err != nil {
			dst.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = dst.WriteString(renamed); err != nil {
		return false, fmt.Errorf("writing header to %s: %w", tmpPath, err)
	}
	if _, err = io.Copy(dst, br); err != nil {
		return false, fmt.Errorf("copying %s: %w", path, err)
	}
	if err = dst.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return false, fmt.Errorf("replacing %s: %w", path, err)
	}
	return true, nil
}
