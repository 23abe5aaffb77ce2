package source

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// Entry is one audio asset in the track list.
type Entry struct {
	Path string
	Type FileType
	Size int64
	// Title comes from the file's tags when it has any, the file name
	// otherwise.
	Title string
}

// Name returns the file name.
func (e Entry) Name() string { return filepath.Base(e.Path) }

// SizeLabel returns the size in human-readable form.
func (e Entry) SizeLabel() string {
	return humanize.Bytes(uint64(max(e.Size, 0))) //nolint:gosec // clamped above
}

// Discover walks paths and returns the audio assets found, in walk order.
// Files given directly are listed even when their extension is unknown, so
// the user gets a playback error rather than a silent omission.
func Discover(fs afero.Fs, paths []string) ([]Entry, error) {
	var entries []Entry
	for _, root := range paths {
		info, err := fs.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			t, _ := TypeOf(root)
			entries = append(entries, newEntry(fs, root, t, info.Size()))
			continue
		}

		err = afero.Walk(fs, root, func(path string, fi os.FileInfo, walkErr error) error {
			// Skip unreadable entries and keep scanning
			if walkErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}
			if fi.IsDir() {
				return nil
			}
			t, ok := TypeOf(path)
			if !ok {
				return nil
			}
			entries = append(entries, newEntry(fs, path, t, fi.Size()))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Overlapping paths list a file once, at its first position
	return lo.UniqBy(entries, func(e Entry) string { return e.Path }), nil
}

func newEntry(fs afero.Fs, path string, t FileType, size int64) Entry {
	e := Entry{Path: path, Type: t, Size: size, Title: filepath.Base(path)}
	if !t.Encrypted() {
		if title := readTitle(fs, path); title != "" {
			e.Title = title
		}
	}
	return e
}
