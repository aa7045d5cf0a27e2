// Package installer writes fetched skills to the local skills directory and
// keeps the receipt database in sync. Installs are staged in a temp directory
// and moved into place with a rename, so a crash never leaves a half-written
// skill behind.
package installer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/runger/skillet/internal/registry"
	"github.com/runger/skillet/internal/state"
)

// ErrNotInstalled is returned when removing a skill that has no receipt.
var ErrNotInstalled = errors.New("skill is not installed")

// Result reports what an install did.
type Result struct {
	Receipt state.Receipt
	Updated bool // false when the skill was already installed with identical content
}

// Installer places skills under a root directory.
type Installer struct {
	dir   string
	store *state.Store
	log   *slog.Logger
}

// New creates an installer rooted at dir.
func New(dir string, store *state.Store, log *slog.Logger) *Installer {
	if log == nil {
		log = slog.Default()
	}
	return &Installer{dir: dir, store: store, log: log}
}

// Install writes the skill's files to <dir>/<name>. When a receipt with the
// same checksum already exists the install is a no-op.
func (i *Installer) Install(ctx context.Context, sk registry.Skill, files []registry.File, source string) (Result, error) {
	if err := validateName(sk.Name); err != nil {
		return Result{}, err
	}
	for _, f := range files {
		if err := validateName(f.Name); err != nil {
			return Result{}, fmt.Errorf("skill %s: %w", sk.Name, err)
		}
	}

	lk, err := acquireLock(i.dir)
	if err != nil {
		return Result{}, fmt.Errorf("lock skills directory: %w", err)
	}
	defer lk.release()

	sum := Checksum(files)

	prev, err := i.store.Get(ctx, sk.Name)
	if err == nil && prev.Checksum == sum {
		i.log.Debug("skill already installed", "name", sk.Name, "checksum", sum)
		return Result{Receipt: prev}, nil
	}
	if err != nil && !errors.Is(err, state.ErrNotFound) {
		return Result{}, err
	}

	staging, err := os.MkdirTemp(i.dir, ".staging-")
	if err != nil {
		return Result{}, fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	for _, f := range files {
		if err := os.WriteFile(filepath.Join(staging, f.Name), f.Data, 0o644); err != nil {
			return Result{}, fmt.Errorf("stage %s: %w", f.Name, err)
		}
	}

	target := filepath.Join(i.dir, sk.Name)
	if err := os.RemoveAll(target); err != nil {
		return Result{}, fmt.Errorf("clear %s: %w", target, err)
	}
	if err := os.Rename(staging, target); err != nil {
		return Result{}, fmt.Errorf("move skill into place: %w", err)
	}

	receipt, err := i.store.Record(ctx, state.Receipt{
		Name:     sk.Name,
		Version:  sk.Version,
		Source:   source,
		Checksum: sum,
	})
	if err != nil {
		return Result{}, err
	}

	i.log.Info("installed skill", "name", sk.Name, "version", sk.Version, "files", len(files))
	return Result{Receipt: receipt, Updated: true}, nil
}

// Remove deletes an installed skill and its receipt.
func (i *Installer) Remove(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	lk, err := acquireLock(i.dir)
	if err != nil {
		return fmt.Errorf("lock skills directory: %w", err)
	}
	defer lk.release()

	if _, err := i.store.Get(ctx, name); err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return fmt.Errorf("%q: %w", name, ErrNotInstalled)
		}
		return err
	}

	if err := os.RemoveAll(filepath.Join(i.dir, name)); err != nil {
		return fmt.Errorf("remove skill %s: %w", name, err)
	}
	if err := i.store.Delete(ctx, name); err != nil {
		return err
	}

	i.log.Info("removed skill", "name", name)
	return nil
}

// Path returns where a skill lives on disk.
func (i *Installer) Path(name string) string {
	return filepath.Join(i.dir, name)
}

// Checksum hashes a file set so identical content is recognizable across
// installs. Order does not matter.
func Checksum(files []registry.File) string {
	sorted := make([]registry.File, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	h := sha256.New()
	for _, f := range sorted {
		fmt.Fprintf(h, "%s\x00%d\x00", f.Name, len(f.Data))
		h.Write(f.Data)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// validateName rejects anything that could escape the skills directory.
func validateName(name string) error {
	if name == "" {
		return errors.New("empty file or skill name")
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return fmt.Errorf("unsafe name %q", name)
	}
	return nil
}
