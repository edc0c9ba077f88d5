package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	filePrefix = "session_"
	fileSuffix = ".json"

	dirPerm  = 0o700
	filePerm = 0o600
)

// FileStore persists one JSON file per session key in a local directory.
//
// Writes are atomic: the record is written to a uuid-suffixed temp file in
// the same directory and renamed into place, so a concurrent reader never
// observes a partially written record. Two processes racing to save the
// same key overwrite each other and the last writer wins.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir, creating the directory if
// needed. An empty dir defaults to <user cache dir>/hacauth. No group or
// world access is granted to the directory or its files.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, errors.Join(ErrStoreFailure, err)
		}
		dir = filepath.Join(base, "hacauth")
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return &FileStore{dir: dir}, nil
}

// Dir returns the cache directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key Key) string {
	return filepath.Join(s.dir, filePrefix+string(key)+fileSuffix)
}

// Load returns the session stored under key. Unreadable or incomplete
// records are deleted and reported as ErrSessionNotFound; a parse error
// never reaches the caller.
func (s *FileStore) Load(ctx context.Context, key Key) (*Session, error) {
	if !key.Valid() {
		return nil, ErrSessionNotFound
	}

	path := s.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || !sess.Complete() {
		// Corrupt cache record: delete and treat as absent.
		_ = os.Remove(path)
		return nil, ErrSessionNotFound
	}

	return &sess, nil
}

// Save writes the session under key. When a record already exists its
// CreatedAt is preserved, making creation time idempotent across saves.
// Only Session fields are persisted; credential material never reaches
// disk.
func (s *FileStore) Save(ctx context.Context, key Key, sess *Session) error {
	if !key.Valid() {
		return ErrInvalidSession
	}
	if !sess.Complete() {
		return ErrInvalidSession
	}

	record := sess.Clone()
	if existing, err := s.Load(ctx, key); err == nil {
		record.CreatedAt = existing.CreatedAt
	}
	record.Touch()

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	return s.writeAtomic(s.path(key), data)
}

// Touch advances the stored session's last-used timestamp.
func (s *FileStore) Touch(ctx context.Context, key Key) error {
	sess, err := s.Load(ctx, key)
	if err != nil {
		return err
	}

	sess.Touch()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	return s.writeAtomic(s.path(key), data)
}

// Remove deletes the session under key. Absent keys are not an error.
func (s *FileStore) Remove(ctx context.Context, key Key) error {
	if !key.Valid() {
		return nil
	}
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// List returns all stored sessions, most recently used first. Corrupt
// records encountered along the way are deleted and skipped.
func (s *FileStore) List(ctx context.Context) ([]*Session, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var sessions []*Session
	for _, entry := range entries {
		key, ok := keyFromFileName(entry.Name())
		if !ok {
			continue
		}
		sess, err := s.Load(ctx, key)
		if err != nil {
			continue
		}
		sessions = append(sessions, sess)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastUsedAt > sessions[j].LastUsedAt
	})

	return sessions, nil
}

// ClearAll removes every session file and returns the count removed.
func (s *FileStore) ClearAll(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, errors.Join(ErrStoreFailure, err)
	}

	removed := 0
	for _, entry := range entries {
		if _, ok := keyFromFileName(entry.Name()); !ok {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
			removed++
		}
	}

	return removed, nil
}

// writeAtomic writes data to a uuid-suffixed temp file in the target
// directory and renames it into place.
func (s *FileStore) writeAtomic(path string, data []byte) error {
	tmp := path + "." + uuid.NewString() + ".tmp"

	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Join(ErrStoreFailure, err)
	}

	return nil
}

func keyFromFileName(name string) (Key, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return "", false
	}
	key := Key(strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix))
	if !key.Valid() {
		return "", false
	}
	return key, true
}
