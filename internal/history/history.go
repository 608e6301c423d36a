// Package history persists the per-project branch visitation ledger.
//
// The ledger is a line-oriented text file shared by every project on
// the machine. Each line is one visit record:
//
//	/abs/project/path::branch-name
//
// The double-colon separator is safe because git refuses ':' in branch
// names and RecordVisit rejects project paths containing the sequence.
// Entries for one project are ordered oldest first; recording a branch
// that already exists for the project moves it to the end, so the tail
// of a project's list is always its most recently visited branch.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const separator = "::"

var (
	// ErrNoHistory means the project has no recorded branches, or fewer
	// than the query needs.
	ErrNoHistory = errors.New("no branch history")

	// ErrInvalidOffset means a relative or absolute history offset is
	// non-numeric or resolves outside the recorded list.
	ErrInvalidOffset = errors.New("invalid history offset")

	// ErrStorageUnavailable wraps unrecoverable I/O failures on the
	// ledger file.
	ErrStorageUnavailable = errors.New("history storage unavailable")
)

type entry struct {
	project string
	branch  string
}

// Store reads and rewrites the ledger file. Each operation loads the
// full ledger, mutates it in memory, and rewrites the file whole; the
// store holds no open handles between operations.
type Store struct {
	path string
}

// DefaultPath returns the well-known ledger location in the user's
// home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return filepath.Join(home, ".dit", "branch_history"), nil
}

// Open returns a store backed by the ledger file at path. The file is
// created on first write; a missing file reads as an empty ledger.
func Open(path string) *Store {
	return &Store{path: path}
}

// Path returns the ledger file location.
func (s *Store) Path() string { return s.path }

func (s *Store) load() ([]entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer f.Close()

	var entries []entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		idx := strings.LastIndex(line, separator)
		if idx <= 0 {
			// Unparseable line, likely hand-edited. Skip rather than
			// discard the whole ledger.
			continue
		}
		entries = append(entries, entry{
			project: line[:idx],
			branch:  line[idx+len(separator):],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return entries, nil
}

// save rewrites the ledger atomically: the new content goes to a temp
// file which is renamed over the old one. The previous revision is
// kept zstd-compressed next to the ledger for manual recovery.
func (s *Store) save(entries []entry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if prev, err := os.ReadFile(s.path); err == nil {
		if err := s.writeBackup(prev); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, ".branch_history-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	w := bufio.NewWriter(tmp)
	for _, e := range entries {
		fmt.Fprintf(w, "%s%s%s\n", e.project, separator, e.branch)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) writeBackup(prev []byte) error {
	f, err := os.Create(s.path + ".bak.zst")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if _, err := enc.Write(prev); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// RecordVisit appends a visit for the project, removing any earlier
// occurrence of the same branch first (move-to-end upsert).
func (s *Store) RecordVisit(projectKey, branch string) error {
	if projectKey == "" || branch == "" {
		return fmt.Errorf("record visit: empty project key or branch")
	}
	if strings.Contains(projectKey, separator) || strings.Contains(branch, separator) {
		return fmt.Errorf("record visit: %q separator not allowed in fields", separator)
	}

	entries, err := s.load()
	if err != nil {
		return err
	}
	out := entries[:0]
	for _, e := range entries {
		if e.project == projectKey && e.branch == branch {
			continue
		}
		out = append(out, e)
	}
	out = append(out, entry{project: projectKey, branch: branch})
	return s.save(out)
}

// Branches returns the project's recorded branches, oldest first.
func (s *Store) Branches(projectKey string) ([]string, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	var branches []string
	for _, e := range entries {
		if e.project == projectKey {
			branches = append(branches, e.branch)
		}
	}
	return branches, nil
}

// Count returns the number of distinct branches recorded for the
// project.
func (s *Store) Count(projectKey string) (int, error) {
	branches, err := s.Branches(projectKey)
	if err != nil {
		return 0, err
	}
	return len(branches), nil
}

// MostRecent returns the last branch visited in the project. If that
// branch equals excluding (the branch the caller is currently on), the
// one before it is returned instead, modeling "the branch I was on
// before this one".
func (s *Store) MostRecent(projectKey, excluding string) (string, error) {
	branches, err := s.Branches(projectKey)
	if err != nil {
		return "", err
	}
	if len(branches) > 0 && branches[len(branches)-1] == excluding {
		branches = branches[:len(branches)-1]
	}
	if len(branches) == 0 {
		return "", ErrNoHistory
	}
	return branches[len(branches)-1], nil
}

// AtOffsetFromEnd returns the branch at the 1-based offset counted
// from the most recent entry: offset 1 is the literal last entry, with
// no current-branch exclusion applied.
func (s *Store) AtOffsetFromEnd(projectKey string, offset int) (string, error) {
	if offset < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}
	branches, err := s.Branches(projectKey)
	if err != nil {
		return "", err
	}
	if len(branches) == 0 {
		return "", ErrNoHistory
	}
	if offset > len(branches) {
		return "", fmt.Errorf("%w: %d exceeds %d recorded branches", ErrInvalidOffset, offset, len(branches))
	}
	return branches[len(branches)-offset], nil
}

// RelativeFromEnd resolves "n branches back from the most recent":
// n=1 is the branch before the last entry. With the current branch
// recorded last, this is how `swap last -n N` addresses history.
func (s *Store) RelativeFromEnd(projectKey string, n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidOffset, n)
	}
	return s.AtOffsetFromEnd(projectKey, n+1)
}
