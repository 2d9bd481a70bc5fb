package commands

import (
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/audit"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/config"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/gitops"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/ledger"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/logger"
)

// auditFile is the audit document inside the data directory.
const auditFile = "audit.json"

// desk bundles everything a command needs once the project is located:
// config, logger, and the directories the documents live in.
type desk struct {
	root string
	cfg  *config.Config
	log  *zap.SugaredLogger
}

func openDesk(dir string) (*desk, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	return &desk{root: absDir, cfg: cfg, log: log}, nil
}

func (d *desk) dataDir() string {
	return filepath.Join(d.root, d.cfg.Storage.DataDir)
}

func (d *desk) reportsDir() string {
	return filepath.Join(d.root, d.cfg.Storage.ReportsDir)
}

func (d *desk) openLedger() *ledger.Service {
	return ledger.Open(ledger.DefaultPaths(d.dataDir()))
}

func (d *desk) openAudit() *audit.Logger {
	return audit.New(filepath.Join(d.dataDir(), auditFile))
}

func (d *desk) suspiciousThreshold() decimal.Decimal {
	return decimal.NewFromFloat(d.cfg.Thresholds.Suspicious)
}

// flush persists the collections and, when enabled, commits the project
// directory. A failed commit is logged but never fails the operation.
func (d *desk) flush(svc *ledger.Service, message string) error {
	if err := svc.Flush(); err != nil {
		return err
	}
	if d.cfg.Git.AutoCommit && gitops.IsRepo(d.root) {
		if _, err := gitops.CommitAll(d.root, message, d.cfg.Git.AuthorName, d.cfg.Git.AuthorEmail); err != nil {
			d.log.Warnw("auto-commit failed", "error", err)
		}
	}
	return nil
}
