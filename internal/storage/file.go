// Package storage reads event feeds from disk and writes command output.
// Paths ending in .gz are transparently (de)compressed.
package storage

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const gzipExt = ".gz"

// Compressed reports whether path names a gzip file.
func Compressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), gzipExt)
}

// Ext returns the extension of path with any .gz suffix removed, lower-cased.
// "events.csv.gz" yields ".csv".
func Ext(path string) string {
	if Compressed(path) {
		path = path[:len(path)-len(gzipExt)]
	}
	return strings.ToLower(filepath.Ext(path))
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	err := g.Reader.Close()
	if cerr := g.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Open opens path for reading, decompressing gzip files.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	if !Compressed(path) {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read gzip header: %w", err)
	}
	return &gzipFile{Reader: gz, f: f}, nil
}

// WriteFile writes data to path, gzipping it when path ends in .gz.
func WriteFile(path string, data []byte) error {
	return write(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteJSON encodes v as indented JSON to path, gzipping it when path ends in .gz.
func WriteJSON(path string, v any) error {
	return write(path, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	})
}

func write(path string, fill func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if !Compressed(path) {
		if err := fill(f); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return f.Close()
	}

	gzWriter := gzip.NewWriter(f)
	if err := fill(gzWriter); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return f.Close()
}
