// Package romfile loads ROM images from disk. Test-ROM suites are commonly
// distributed inside zip, gzip or 7z archives, so the loader transparently
// extracts the first archive entry before handing the bytes on.
package romfile

import (
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
	"github.com/cespare/xxhash"
)

// ErrEmptyArchive indicates an archive with no entries to extract.
var ErrEmptyArchive = errors.New("archive contains no files")

// Load reads a ROM image. Plain files are returned as-is; .gz, .zip and .7z
// files yield their first entry decompressed.
func Load(path string) ([]byte, error) {
	// #nosec G304 - path is provided by the user via CLI argument
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ROM: %w", err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".gz":
		return loadGzip(f)
	case ".zip":
		return loadZip(f)
	case ".7z":
		return loadSevenZip(f)
	default:
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read ROM: %w", err)
		}
		return data, nil
	}
}

// Fingerprint returns a stable 64-bit identity for a ROM image.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

func loadGzip(f *os.File) ([]byte, error) {
	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress ROM: %w", err)
	}
	return data, nil
}

func loadZip(f *os.File) ([]byte, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	r, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}
	if len(r.File) == 0 {
		return nil, ErrEmptyArchive
	}

	entry, err := r.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open zip entry: %w", err)
	}
	defer entry.Close()

	data, err := io.ReadAll(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to extract ROM: %w", err)
	}
	return data, nil
}

func loadSevenZip(f *os.File) ([]byte, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	r, err := sevenzip.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z archive: %w", err)
	}
	if len(r.File) == 0 {
		return nil, ErrEmptyArchive
	}

	entry, err := r.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z entry: %w", err)
	}
	defer entry.Close()

	data, err := io.ReadAll(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to extract ROM: %w", err)
	}
	return data, nil
}
