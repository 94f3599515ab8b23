// Package store persists the facility's entities as pipe-delimited line
// records, one logical record per line, one file per entity kind. The
// format is deliberately simple, a plain-text registry rather than a
// database: writes are best effort and a malformed line is skipped with a
// warning instead of failing a whole load.
package store

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// timeLayout is the ISO-8601 local date-time form used in every record.
// The records carry no zone, so parsing must use time.ParseInLocation with
// time.Local: plain time.Parse would read the same wall clock back as UTC
// and shift every reloaded instant by the zone offset.
const timeLayout = "2006-01-02T15:04:05"

// nullField marks an absent timestamp inside a record.
const nullField = "null"

// lineFile is one record file. Each store wraps a lineFile and handles the
// field encoding itself. The mutex serializes every read and write: the
// HTTP layer calls the stores concurrently, and an upsert rewrites the
// whole file, so interleaved operations could drop records.
type lineFile struct {
	mu   sync.Mutex
	path string
}

// newLineFile ensures the data directory exists and returns a handle to
// the named file inside it. The file itself is created lazily on the first
// write.
func newLineFile(dir, name string) (*lineFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &lineFile{path: filepath.Join(dir, name)}, nil
}

// readLines returns every non-empty line of the file. A missing file is an
// empty store, not an error.
func (f *lineFile) readLines() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readLinesLocked()
}

func (f *lineFile) readLinesLocked() ([]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// appendLine adds one record at the end of the file.
func (f *lineFile) appendLine(line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appendLineLocked(line)
}

func (f *lineFile) appendLineLocked(line string) error {
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = file.WriteString(line + "\n")
	return err
}

// findLine returns the first line starting with the given prefix.
func (f *lineFile) findLine(prefix string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines, err := f.readLinesLocked()
	if err != nil {
		return "", false, err
	}
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return line, true, nil
		}
	}
	return "", false, nil
}

// upsertLine overwrites the record whose line starts with key+"|", or
// appends the line when no such record exists. Updates rewrite the whole
// file; the stores are small enough that this is fine.
func (f *lineFile) upsertLine(key, line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines, err := f.readLinesLocked()
	if err != nil {
		return err
	}
	prefix := key + "|"
	replaced := false
	for i, old := range lines {
		if strings.HasPrefix(old, prefix) {
			lines[i] = line
			replaced = true
			break
		}
	}
	if !replaced {
		return f.appendLineLocked(line)
	}
	return f.writeAll(lines)
}

func (f *lineFile) writeAll(lines []string) error {
	tmp := f.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			file.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
