//go:build !windows

// Package stderr captures what C libraries (PortAudio, ALSA, faad2) write
// straight to file descriptor 2, so it lands in the log instead of on top
// of the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"
)

// capture is an active redirection of fd 2 into a pipe.
type capture struct {
	saved int // duplicate of the original fd 2
	write *os.File
}

var (
	mu       sync.Mutex
	active   *capture
	stopOnce sync.Once
)

// Start redirects fd 2 into Messages. Call it before any C library is
// initialised. On error the process keeps writing to the real stderr.
func Start() error {
	mu.Lock()
	defer mu.Unlock()
	if active != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	fd := int(os.Stderr.Fd())
	saved, err := syscall.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := syscall.Dup2(int(w.Fd()), fd); err != nil {
		syscall.Close(saved)
		r.Close()
		w.Close()
		return err
	}

	active = &capture{saved: saved, write: w}
	go pump(r)
	return nil
}

// pump forwards lines until every write end of the pipe is closed, then
// closes Messages. A full channel drops lines.
func pump(r *os.File) {
	defer stopOnce.Do(func() { close(Messages) })
	defer r.Close()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case Messages <- line:
		default:
		}
	}
}

// Stop puts the original stderr back. Messages is closed once the pending
// lines are drained, or right away when capture never started.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		stopOnce.Do(func() { close(Messages) })
		return
	}

	_ = syscall.Dup2(active.saved, int(os.Stderr.Fd()))
	_ = syscall.Close(active.saved)
	active.write.Close()
	active = nil
}
