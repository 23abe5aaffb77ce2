package source

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// artNames lists image files that can stand for a track, in priority
// order, relative to a directory.
var artNames = []string{
	"cover.png", "cover.jpg", "folder.png", "folder.jpg",
	filepath.Join("icon", "icon.png"),
	filepath.Join("www", "icon", "icon.png"),
}

// artDepth is how many directories above the track are searched. Game
// audio usually sits two or three levels below the icon folder.
const artDepth = 3

// FindArt looks for an image next to the track or in the game folders
// above it. Returns the path, or empty string if not found.
func FindArt(fs afero.Fs, trackPath string) string {
	dir := filepath.Dir(trackPath)
	for range artDepth + 1 {
		for _, name := range artNames {
			path := filepath.Join(dir, name)
			if _, err := fs.Stat(path); err == nil {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Art returns the image standing for e, or "".
func (l *Loader) Art(e Entry) string {
	return FindArt(l.fs, e.Path)
}
