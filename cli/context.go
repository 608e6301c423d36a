package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abnegate/dit/internal/colors"
	"github.com/abnegate/dit/internal/compose"
	"github.com/abnegate/dit/internal/config"
	"github.com/abnegate/dit/internal/gitcmd"
	"github.com/abnegate/dit/internal/history"
	"github.com/abnegate/dit/internal/store"
)

// project bundles everything a handler needs for the directory dit was
// invoked from.
type project struct {
	workDir string
	// key is the stable working-directory identity the branch ledger
	// is scoped by: the git top level when inside a repository, the
	// absolute working directory otherwise.
	key     string
	cfg     *config.Config
	git     *gitcmd.Client
	compose *compose.Runner
	ledger  *history.Store
}

// loadProject resolves the invocation context. It never touches the
// network and only reads local state.
func loadProject() (*project, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := config.Load(workDir)
	if err != nil {
		return nil, err
	}
	if cfg.Color.UI != nil {
		colors.SetColorEnabled(*cfg.Color.UI)
	}

	git := gitcmd.New(workDir)
	key := workDir
	if git.IsRepo() {
		if root, err := git.Root(); err == nil {
			key = root
		}
	}
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}

	extraArgs, err := cfg.ComposeExtraArgs()
	if err != nil {
		return nil, err
	}

	ledgerPath, err := history.DefaultPath()
	if err != nil {
		return nil, err
	}

	return &project{
		workDir: workDir,
		key:     key,
		cfg:     cfg,
		git:     git,
		compose: compose.NewRunner(cfg.Compose.Command, cfg.Compose.File, extraArgs, workDir),
		ledger:  history.Open(cfg.LedgerPath(ledgerPath)),
	}, nil
}

// requireRepo fails early for handlers that only make sense inside a
// git repository.
func (p *project) requireRepo() error {
	if !p.git.IsRepo() {
		return fmt.Errorf("not inside a git repository: %s", p.workDir)
	}
	return nil
}

// stampedLedger decorates the text ledger so every recorded visit also
// gets a timestamp in the metadata store. Metadata failures are not
// fatal: the ledger is the source of truth, timestamps are garnish.
type stampedLedger struct {
	*history.Store
}

func (l *stampedLedger) RecordVisit(projectKey, branch string) error {
	if err := l.Store.RecordVisit(projectKey, branch); err != nil {
		return err
	}
	if path, err := store.DefaultPath(); err == nil {
		if db, err := store.Open(path); err == nil {
			_ = db.RecordVisit(projectKey, branch, time.Now())
			_ = db.Close()
		}
	}
	return nil
}
