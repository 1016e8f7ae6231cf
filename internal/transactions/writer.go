package transactions

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/graphprep-dev/graphprep/internal/partition"
)

// writerSet manages the output tables, lazily opening one file per table
// (or per table and day key when splitting) and writing its header row.
type writerSet struct {
	dir     string
	files   map[string]*os.File
	writers map[string]*csv.Writer
}

func newWriterSet(dir string) *writerSet {
	return &writerSet{
		dir:     dir,
		files:   make(map[string]*os.File),
		writers: make(map[string]*csv.Writer),
	}
}

// get returns the writer for a table within a partition. key is empty for
// unpartitioned output.
func (s *writerSet) get(key, table, header string) (*csv.Writer, error) {
	name := partition.FileName(key, table)
	if cw, ok := s.writers[name]; ok {
		return cw, nil
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(strings.Split(header, ",")); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing %s header: %w", name, err)
	}

	s.files[name] = f
	s.writers[name] = cw
	return cw, nil
}

// Close flushes and closes every open file, returning the first error.
func (s *writerSet) Close() error {
	var firstErr error
	for name, cw := range s.writers {
		cw.Flush()
		if err := cw.Error(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("flushing %s: %w", name, err)
		}
	}
	for name, f := range s.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing %s: %w", name, err)
		}
	}
	s.writers = make(map[string]*csv.Writer)
	s.files = make(map[string]*os.File)
	return firstErr
}
