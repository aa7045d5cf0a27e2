//go:build !unix

package installer

import "os"

// Windows has no flock; creating the directory is all we do there.
type fileLock struct{}

func acquireLock(dir string) (*fileLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &fileLock{}, nil
}

func (l *fileLock) release() {}
