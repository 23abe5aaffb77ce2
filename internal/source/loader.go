package source

import (
	"errors"
	"fmt"

	"github.com/dhowden/tag"
	"github.com/spf13/afero"
)

var (
	ErrRead    = errors.New("reading file failed")
	ErrDecrypt = errors.New("decryption failed")
)

// Loader reads assets and decrypts them when needed.
type Loader struct {
	fs        afero.Fs
	decrypter Decrypter
}

// NewLoader creates a loader. A nil decrypter means Plain.
func NewLoader(fs afero.Fs, d Decrypter) *Loader {
	if d == nil {
		d = Plain{}
	}
	return &Loader{fs: fs, decrypter: d}
}

// Load returns the plain audio bytes of e.
func (l *Loader) Load(e Entry) ([]byte, error) {
	data, err := afero.ReadFile(l.fs, e.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if !e.Type.Encrypted() {
		return data, nil
	}
	plain, err := l.decrypter.Decrypt(data, e.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	return plain, nil
}

func readTitle(fs afero.Fs, path string) string {
	f, err := fs.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return ""
	}
	return m.Title()
}
