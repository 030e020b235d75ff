package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// PIDFile keeps a single webhookd instance per pid file. The flock(2) lock
// lives as long as the descriptor stays open.
type PIDFile struct {
	path string
	f    *os.File
}

// Acquire takes an exclusive non-blocking lock on path and writes the
// current PID into it. A second process acquiring the same path fails.
func Acquire(path string) (*PIDFile, error) {
	if path == "" {
		return nil, fmt.Errorf("pid file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create pid file directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open pid file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("another webhookd holds %s: %w", path, err)
	}

	p := &PIDFile{path: path, f: f}
	if err := p.writePID(); err != nil {
		_ = p.Release()
		return nil, err
	}
	return p, nil
}

func (p *PIDFile) writePID() error {
	if err := p.f.Truncate(0); err != nil {
		return fmt.Errorf("truncate pid file: %w", err)
	}
	if _, err := p.f.Seek(0, 0); err != nil {
		return fmt.Errorf("seek pid file: %w", err)
	}
	if _, err := fmt.Fprintf(p.f, "%d\n", os.Getpid()); err != nil {
		return fmt.Errorf("write pid: %w", err)
	}
	if err := p.f.Sync(); err != nil {
		return fmt.Errorf("sync pid file: %w", err)
	}
	return nil
}

func (p *PIDFile) Path() string { return p.path }

// Release removes the pid file, then unlocks and closes it. It is safe to
// call more than once.
func (p *PIDFile) Release() error {
	if p == nil || p.f == nil {
		return nil
	}
	// Removed while still locked so a racing Acquire never sees our PID.
	rmErr := os.Remove(p.path)
	if os.IsNotExist(rmErr) {
		rmErr = nil
	}
	_ = syscall.Flock(int(p.f.Fd()), syscall.LOCK_UN)
	err := p.f.Close()
	p.f = nil
	if err != nil {
		return fmt.Errorf("close pid file: %w", err)
	}
	if rmErr != nil {
		return fmt.Errorf("remove pid file: %w", rmErr)
	}
	return nil
}
