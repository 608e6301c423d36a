// Package store keeps per-project visit metadata in a bbolt database.
//
// The text ledger in internal/history remains the source of truth for
// branch ordering; this store only records when each branch was last
// visited so listings can show timestamps. Project paths are keyed by
// their blake3 hash, which keeps bucket keys fixed-length regardless
// of path depth.
package store

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"lukechampine.com/blake3"
)

// Buckets
var (
	BucketVisits   = []byte("visits")   // projectID/branch -> RFC3339 timestamp
	BucketProjects = []byte("projects") // projectID -> project path
)

type DB struct{ *bbolt.DB }

// DefaultPath returns the metadata database location next to the
// branch ledger.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".dit", "meta.db"), nil
}

// Open opens (creating if needed) the metadata database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := bbolt.Open(path, 0666, nil)
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, e := tx.CreateBucketIfNotExists(BucketVisits); e != nil {
			return e
		}
		if _, e := tx.CreateBucketIfNotExists(BucketProjects); e != nil {
			return e
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db}, nil
}

func (db *DB) Close() error { return db.DB.Close() }

// ProjectID derives the stable fixed-length identity for a project
// path: the hex blake3 hash of the absolute path.
func ProjectID(projectKey string) string {
	sum := blake3.Sum256([]byte(projectKey))
	return hex.EncodeToString(sum[:])
}

// ShortProjectID is the truncated display form used by `dit info`.
func ShortProjectID(projectKey string) string {
	return ProjectID(projectKey)[:12]
}

func visitKey(projectKey, branch string) []byte {
	return []byte(ProjectID(projectKey) + "/" + branch)
}

// RecordVisit stores the visit time for a project/branch pair and
// remembers the project path under its ID.
func (db *DB) RecordVisit(projectKey, branch string, at time.Time) error {
	return db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(BucketVisits).Put(visitKey(projectKey, branch), []byte(at.Format(time.RFC3339))); err != nil {
			return err
		}
		return tx.Bucket(BucketProjects).Put([]byte(ProjectID(projectKey)), []byte(projectKey))
	})
}

// LastVisit returns the recorded visit time for a project/branch pair.
func (db *DB) LastVisit(projectKey, branch string) (time.Time, error) {
	var at time.Time
	err := db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(BucketVisits).Get(visitKey(projectKey, branch))
		if v == nil {
			return errors.New("no visit recorded")
		}
		t, err := time.Parse(time.RFC3339, string(v))
		if err != nil {
			return err
		}
		at = t
		return nil
	})
	return at, err
}
