package store

import (
	"net/url"
	"os"
	"path/filepath"
)

// LocalStore persists metadata and target files under a directory,
// writing every file atomically (temp file in the same directory,
// then rename) so a crash mid-write never leaves a torn file behind.
//
// Grounded on kipz-go-tuf-metadata/metadata/updater/updater.go's
// persistMetadata/loadLocalMetadata (temp-file-then-rename, role name
// URL-escaped into "<role>.json"), generalized to also serve target file
// bytes under a separate targets subdirectory, matching spec.md §4.4's
// filesystem layout note.
type LocalStore struct {
	MetadataDir string
	TargetsDir  string
}

// NewLocalStore builds a LocalStore rooted at metadataDir/targetsDir.
// Both directories are created if absent.
func NewLocalStore(metadataDir, targetsDir string) (*LocalStore, error) {
	if err := os.MkdirAll(metadataDir, 0o755); err != nil {
		return nil, err
	}
	if targetsDir != "" {
		if err := os.MkdirAll(targetsDir, 0o755); err != nil {
			return nil, err
		}
	}
	return &LocalStore{MetadataDir: metadataDir, TargetsDir: targetsDir}, nil
}

func (s *LocalStore) metadataPath(role string) string {
	return filepath.Join(s.MetadataDir, url.QueryEscape(role)+".json")
}

// GetMetadata reads the cached bytes for role, or returns os.ErrNotExist
// (wrapped) if nothing has been cached yet.
func (s *LocalStore) GetMetadata(role string) ([]byte, error) {
	return os.ReadFile(s.metadataPath(role))
}

// SetMetadata atomically replaces the cached bytes for role.
func (s *LocalStore) SetMetadata(role string, content []byte) error {
	return atomicWrite(s.metadataPath(role), content)
}

func (s *LocalStore) targetPath(targetPath string) string {
	return filepath.Join(s.TargetsDir, filepath.FromSlash(targetPath))
}

// GetTarget reads a previously cached target file's bytes.
func (s *LocalStore) GetTarget(targetPath string) ([]byte, error) {
	return os.ReadFile(s.targetPath(targetPath))
}

// SetTarget atomically writes a target file's bytes, creating any
// necessary parent directories (target paths may contain '/').
func (s *LocalStore) SetTarget(targetPath string, content []byte) error {
	full := s.targetPath(targetPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return atomicWrite(full, content)
}

// atomicWrite writes content to a temp file in dest's directory, then
// renames it over dest. Rename within the same filesystem is atomic on
// every platform this module targets.
func atomicWrite(dest string, content []byte) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tuf-tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
