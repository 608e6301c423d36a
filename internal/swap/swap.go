// Package swap sequences the branch-switch operation: resolve the
// target (possibly through branch history), stash, checkout, pull,
// re-apply, reinstall and restart containers. Collaborators are
// injected as interfaces so the ordering rules can be tested without a
// git repository or a container engine.
package swap

import (
	"fmt"

	"github.com/abnegate/dit/internal/colors"
	"github.com/abnegate/dit/internal/compose"
)

// Git is the subset of git operations swap sequences.
type Git interface {
	CurrentBranch() (string, error)
	Checkout(branch string) error
	Stash() error
	StashPop() error
	Pull() error
}

// Compose is the subset of container operations swap sequences.
type Compose interface {
	Up(flags []string, services ...string) error
	Down(volumes bool) error
}

// History resolves "last" targets and records visits.
type History interface {
	RecordVisit(projectKey, branch string) error
	MostRecent(projectKey, excluding string) (string, error)
	RelativeFromEnd(projectKey string, n int) (string, error)
}

// Options are the flags accepted by swap.
type Options struct {
	Stash   bool // stash before checkout
	Apply   bool // pop the stash after checkout
	Pull    bool // pull after checkout
	Install bool // run package-manager installs after switching
	NoUp    bool // skip the container down/up cycle
	Volumes bool // remove volumes on the down leg

	// Offset is the N of "last -n N"; 0 means a bare "last" resolved
	// via MostRecent.
	Offset int
}

// Swapper drives one swap invocation for a project.
type Swapper struct {
	ProjectKey string
	Git        Git
	Compose    Compose
	History    History

	// Install runs the project's package-manager installs. Nil when
	// the install stage is not wired.
	Install func() error
}

// upFlags is the fixed effect set the bring-up stage always uses,
// regardless of what the caller passed to swap itself.
var upFlags = []string{
	compose.FlagBuild,
	compose.FlagDetach,
	compose.FlagForceRecreate,
	compose.FlagRemoveOrphans,
}

// Resolve maps the swap target to a concrete branch name. "last"
// resolves through history: bare (offset 0), to the branch visited
// before the current one; with an explicit offset, to the branch N
// visits back. Non-positive explicit offsets fail the history query's
// range check rather than degrading to a bare "last".
func (s *Swapper) Resolve(target, current string, offset int) (string, error) {
	if target != "last" {
		return target, nil
	}
	if offset != 0 {
		return s.History.RelativeFromEnd(s.ProjectKey, offset)
	}
	return s.History.MostRecent(s.ProjectKey, current)
}

// Swap runs the full sequence. Checkout failure is fatal to the
// remaining stages; the container down is best-effort.
func (s *Swapper) Swap(target string, opts Options) error {
	current, err := s.Git.CurrentBranch()
	if err != nil {
		return fmt.Errorf("determine current branch: %w", err)
	}

	resolved, err := s.Resolve(target, current, opts.Offset)
	if err != nil {
		return err
	}

	// Keep the current branch at the tail of the ledger so a later
	// "last" lands on it.
	if err := s.History.RecordVisit(s.ProjectKey, current); err != nil {
		return err
	}

	if resolved == current {
		fmt.Printf("%s Already on %s\n", colors.Dim("→"), colors.Bold(current))
	} else {
		if opts.Stash {
			if err := s.Git.Stash(); err != nil {
				return fmt.Errorf("stash: %w", err)
			}
		}
		if err := s.Git.Checkout(resolved); err != nil {
			return fmt.Errorf("checkout %s: %w", resolved, err)
		}
		if opts.Pull {
			if err := s.Git.Pull(); err != nil {
				return fmt.Errorf("pull: %w", err)
			}
		}
		if opts.Apply {
			if err := s.Git.StashPop(); err != nil {
				return fmt.Errorf("apply stash: %w", err)
			}
		}
		if err := s.History.RecordVisit(s.ProjectKey, resolved); err != nil {
			return err
		}
		fmt.Printf("%s Swapped to %s\n", colors.Green("✓"), colors.Bold(resolved))
	}

	if opts.Install && s.Install != nil {
		if err := s.Install(); err != nil {
			return err
		}
	}

	if !opts.NoUp {
		// Best-effort: a failed down must not block the up.
		_ = s.Compose.Down(opts.Volumes)
		if err := s.Compose.Up(upFlags); err != nil {
			return fmt.Errorf("bring containers up: %w", err)
		}
	}

	return nil
}
