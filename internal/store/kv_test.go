package store

import (
	"path/filepath"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "meta.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndLookupVisit(t *testing.T) {
	db := testDB(t)

	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	if err := db.RecordVisit("/repo", "main", at); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}

	got, err := db.LastVisit("/repo", "main")
	if err != nil {
		t.Fatalf("LastVisit: %v", err)
	}
	if !got.Equal(at) {
		t.Errorf("LastVisit = %v, want %v", got, at)
	}

	if _, err := db.LastVisit("/repo", "feature"); err == nil {
		t.Error("LastVisit for unrecorded branch succeeded")
	}
	if _, err := db.LastVisit("/other", "main"); err == nil {
		t.Error("LastVisit for unrecorded project succeeded")
	}
}

func TestRecordVisitOverwrites(t *testing.T) {
	db := testDB(t)

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)
	if err := db.RecordVisit("/repo", "main", first); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	if err := db.RecordVisit("/repo", "main", second); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}

	got, err := db.LastVisit("/repo", "main")
	if err != nil {
		t.Fatalf("LastVisit: %v", err)
	}
	if !got.Equal(second) {
		t.Errorf("LastVisit = %v, want %v", got, second)
	}
}

func TestProjectIDStableAndDistinct(t *testing.T) {
	if ProjectID("/repo") != ProjectID("/repo") {
		t.Error("ProjectID not stable for same path")
	}
	if ProjectID("/repo") == ProjectID("/other") {
		t.Error("ProjectID collides for distinct paths")
	}
	if got := len(ShortProjectID("/repo")); got != 12 {
		t.Errorf("ShortProjectID length = %d, want 12", got)
	}
}
