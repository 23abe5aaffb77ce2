package source

import (
	"errors"
	"fmt"
)

// ErrNoDecrypter is returned for encrypted assets when only the plain
// pass-through is configured.
var ErrNoDecrypter = errors.New("no decrypter for this file type")

// Decrypter turns raw asset bytes into plain audio bytes.
type Decrypter interface {
	Decrypt(data []byte, t FileType) ([]byte, error)
}

// DecrypterFunc adapts a function to Decrypter.
type DecrypterFunc func(data []byte, t FileType) ([]byte, error)

func (f DecrypterFunc) Decrypt(data []byte, t FileType) ([]byte, error) {
	return f(data, t)
}

// Plain passes plain files through and refuses encrypted ones.
type Plain struct{}

func (Plain) Decrypt(data []byte, t FileType) ([]byte, error) {
	if t.Encrypted() {
		return nil, fmt.Errorf("%w: %s", ErrNoDecrypter, t)
	}
	return data, nil
}
