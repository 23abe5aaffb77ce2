//go:build windows

// Package stderr is a no-op on Windows, whose audio stack does not write
// to the process stderr.
package stderr

import "sync"

var stopOnce sync.Once

func Start() error { return nil }

// Stop closes Messages.
func Stop() {
	stopOnce.Do(func() { close(Messages) })
}
