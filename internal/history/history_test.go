package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "branch_history"))
}

func mustRecord(t *testing.T, s *Store, project, branch string) {
	t.Helper()
	if err := s.RecordVisit(project, branch); err != nil {
		t.Fatalf("RecordVisit(%s, %s): %v", project, branch, err)
	}
}

func TestEmptyLedgerReadsAsEmpty(t *testing.T) {
	s := testStore(t)

	n, err := s.Count("/repo")
	if err != nil {
		t.Fatalf("Count on missing ledger: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
	if _, err := s.MostRecent("/repo", "main"); !errors.Is(err, ErrNoHistory) {
		t.Errorf("MostRecent on empty ledger: got %v, want ErrNoHistory", err)
	}
}

func TestMoveToEndDedupe(t *testing.T) {
	s := testStore(t)
	mustRecord(t, s, "/repo", "a")
	mustRecord(t, s, "/repo", "b")
	mustRecord(t, s, "/repo", "a")

	branches, err := s.Branches("/repo")
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, branches); diff != "" {
		t.Errorf("ledger order (-want +got):\n%s", diff)
	}

	got, err := s.MostRecent("/repo", "a")
	if err != nil {
		t.Fatalf("MostRecent: %v", err)
	}
	if got != "b" {
		t.Errorf("MostRecent excluding a = %q, want b", got)
	}
}

func TestMostRecentSkipsCurrentBranchOnly(t *testing.T) {
	s := testStore(t)
	mustRecord(t, s, "/repo", "main")
	mustRecord(t, s, "/repo", "feature")
	mustRecord(t, s, "/repo", "main")

	branches, _ := s.Branches("/repo")
	if diff := cmp.Diff([]string{"feature", "main"}, branches); diff != "" {
		t.Errorf("ledger order (-want +got):\n%s", diff)
	}

	got, err := s.MostRecent("/repo", "main")
	if err != nil {
		t.Fatalf("MostRecent: %v", err)
	}
	if got != "feature" {
		t.Errorf("MostRecent excluding main = %q, want feature", got)
	}

	// Not currently on the last-recorded branch: the literal last entry
	// is returned.
	got, err = s.MostRecent("/repo", "feature")
	if err != nil {
		t.Fatalf("MostRecent: %v", err)
	}
	if got != "main" {
		t.Errorf("MostRecent excluding feature = %q, want main", got)
	}
}

func TestMostRecentSingleEntryIsCurrent(t *testing.T) {
	s := testStore(t)
	mustRecord(t, s, "/repo", "main")

	if _, err := s.MostRecent("/repo", "main"); !errors.Is(err, ErrNoHistory) {
		t.Errorf("got %v, want ErrNoHistory", err)
	}
}

func TestAtOffsetFromEnd(t *testing.T) {
	s := testStore(t)
	mustRecord(t, s, "/repo", "a")
	mustRecord(t, s, "/repo", "b")
	mustRecord(t, s, "/repo", "c")

	cases := []struct {
		offset int
		want   string
	}{
		{1, "c"},
		{2, "b"},
		{3, "a"},
	}
	for _, tc := range cases {
		got, err := s.AtOffsetFromEnd("/repo", tc.offset)
		if err != nil {
			t.Fatalf("AtOffsetFromEnd(%d): %v", tc.offset, err)
		}
		if got != tc.want {
			t.Errorf("AtOffsetFromEnd(%d) = %q, want %q", tc.offset, got, tc.want)
		}
	}

	if _, err := s.AtOffsetFromEnd("/repo", 4); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("offset past end: got %v, want ErrInvalidOffset", err)
	}
	if _, err := s.AtOffsetFromEnd("/repo", 0); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("offset 0: got %v, want ErrInvalidOffset", err)
	}
	if _, err := s.AtOffsetFromEnd("/repo", -2); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("negative offset: got %v, want ErrInvalidOffset", err)
	}
}

func TestRelativeFromEnd(t *testing.T) {
	s := testStore(t)
	mustRecord(t, s, "/repo", "a")
	mustRecord(t, s, "/repo", "b")
	mustRecord(t, s, "/repo", "c")

	// n counts back from the most recent entry: with the current branch
	// recorded last, n=1 is the branch visited just before it.
	got, err := s.RelativeFromEnd("/repo", 1)
	if err != nil {
		t.Fatalf("RelativeFromEnd(1): %v", err)
	}
	if got != "b" {
		t.Errorf("RelativeFromEnd(1) = %q, want b", got)
	}

	got, err = s.RelativeFromEnd("/repo", 2)
	if err != nil {
		t.Fatalf("RelativeFromEnd(2): %v", err)
	}
	if got != "a" {
		t.Errorf("RelativeFromEnd(2) = %q, want a", got)
	}

	if _, err := s.RelativeFromEnd("/repo", 3); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("n past start: got %v, want ErrInvalidOffset", err)
	}
	if _, err := s.RelativeFromEnd("/repo", 0); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("n=0: got %v, want ErrInvalidOffset", err)
	}
}

func TestProjectsAreIsolated(t *testing.T) {
	s := testStore(t)
	mustRecord(t, s, "/repo-one", "main")
	mustRecord(t, s, "/repo-one", "feature")
	mustRecord(t, s, "/repo-two", "develop")

	got, err := s.MostRecent("/repo-one", "feature")
	if err != nil {
		t.Fatalf("MostRecent repo-one: %v", err)
	}
	if got != "main" {
		t.Errorf("repo-one MostRecent = %q, want main", got)
	}

	got, err = s.AtOffsetFromEnd("/repo-two", 1)
	if err != nil {
		t.Fatalf("AtOffsetFromEnd repo-two: %v", err)
	}
	if got != "develop" {
		t.Errorf("repo-two last = %q, want develop", got)
	}
	if _, err := s.AtOffsetFromEnd("/repo-two", 2); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("repo-two offset 2: got %v, want ErrInvalidOffset", err)
	}

	n, _ := s.Count("/repo-one")
	if n != 2 {
		t.Errorf("repo-one Count = %d, want 2", n)
	}
}

func TestLedgerFileFormat(t *testing.T) {
	s := testStore(t)
	mustRecord(t, s, "/home/me/proj", "feat/login")

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}
	if string(data) != "/home/me/proj::feat/login\n" {
		t.Errorf("ledger content = %q", string(data))
	}
}

func TestSeparatorRejectedInFields(t *testing.T) {
	s := testStore(t)
	if err := s.RecordVisit("/weird::path", "main"); err == nil {
		t.Error("project key containing separator was accepted")
	}
	if err := s.RecordVisit("/repo", "bad::branch"); err == nil {
		t.Error("branch containing separator was accepted")
	}
}

func TestRewriteKeepsCompressedBackup(t *testing.T) {
	s := testStore(t)
	mustRecord(t, s, "/repo", "main")
	mustRecord(t, s, "/repo", "feature")

	if _, err := os.Stat(s.Path() + ".bak.zst"); err != nil {
		t.Errorf("backup missing after rewrite: %v", err)
	}
}

func TestUnparseableLinesSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "branch_history")
	content := "/repo::main\ngarbage line\n\n/repo::feature\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	s := Open(path)
	branches, err := s.Branches("/repo")
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}
	if diff := cmp.Diff([]string{"main", "feature"}, branches); diff != "" {
		t.Errorf("branches (-want +got):\n%s", diff)
	}
}
