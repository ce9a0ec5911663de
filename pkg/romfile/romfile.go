// Package romfile loads a ROM image from disk, transparently
// decompressing the common archive formats emulator front-ends ship
// ROMs in, and fingerprints the result for cache keys and logging.
package romfile

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/cespare/xxhash"
)

// Image is a loaded ROM: the raw bytes the cartridge header is parsed
// from, the path it came from (used to derive the `.sav` path), and a
// content digest for cache keys.
type Image struct {
	Data []byte
	Path string
	Hash uint64
}

// Load reads path and, if its extension names a supported archive
// format, decompresses the first entry inside it.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("romfile: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("romfile: %w", err)
	}

	decompressed, err := decompress(path, data)
	if err != nil {
		return nil, fmt.Errorf("romfile: %w", err)
	}

	return &Image{
		Data: decompressed,
		Path: path,
		Hash: xxhash.Sum64(decompressed),
	}, nil
}

func decompress(path string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gb", ".gbc", "":
		return data, nil
	case ".gz":
		r, err := gzip.NewReader(strings.NewReader(string(data)))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".zip":
		return firstEntry(zipOpener{data})
	case ".7z":
		return firstEntry(sevenZipOpener{data})
	default:
		return data, nil
	}
}

// entryOpener abstracts over the archive libraries' differing first-
// file APIs so decompress can share one code path for both.
type entryOpener interface {
	open() (io.ReadCloser, error)
}

type zipOpener struct{ data []byte }

func (z zipOpener) open() (io.ReadCloser, error) {
	r, err := zip.NewReader(bytesReaderAt(z.data), int64(len(z.data)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, fmt.Errorf("zip archive is empty")
	}
	return r.File[0].Open()
}

type sevenZipOpener struct{ data []byte }

func (s sevenZipOpener) open() (io.ReadCloser, error) {
	r, err := sevenzip.NewReader(bytesReaderAt(s.data), int64(len(s.data)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, fmt.Errorf("7z archive is empty")
	}
	return r.File[0].Open()
}

func firstEntry(o entryOpener) ([]byte, error) {
	rc, err := o.open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// bytesReaderAt adapts an in-memory byte slice to io.ReaderAt, which
// both zip.NewReader and sevenzip.NewReader require.
type bytesReaderAtImpl struct{ data []byte }

func bytesReaderAt(data []byte) io.ReaderAt { return bytesReaderAtImpl{data} }

func (b bytesReaderAtImpl) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
