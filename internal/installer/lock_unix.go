//go:build unix

package installer

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// fileLock holds an exclusive flock on the skills directory so concurrent
// skillet processes cannot interleave installs.
type fileLock struct {
	f *os.File
}

func acquireLock(dir string) (*fileLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, ".lock"), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, err
	}
	return &fileLock{f: f}, nil
}

func (l *fileLock) release() {
	_ = unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	_ = l.f.Close()
}
