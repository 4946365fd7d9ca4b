package application

import (
	"go.uber.org/zap"

	"github.com/akeso/akeso/internal/domain"
	"github.com/akeso/akeso/internal/domain/rules"
	"github.com/akeso/akeso/internal/logging"
)

// HealEngine implements domain.Engine with the built-in text rules.
// Per-file failures are captured in the returned records, so a batch always
// runs to completion.
type HealEngine struct {
	store  domain.Store
	policy domain.IgnorePolicy
	rules  []rules.Rule
	opts   domain.HealOptions
	logger *zap.Logger
}

func NewHealEngine(store domain.Store, policy domain.IgnorePolicy, opts domain.HealOptions, logger *zap.Logger) *HealEngine {
	return &HealEngine{
		store:  store,
		policy: policy,
		rules:  rules.Default(),
		opts:   opts,
		logger: logging.OrNop(logger),
	}
}

// AuditStream audits in-memory content. Nothing is written.
func (e *HealEngine) AuditStream(content, sourceName string) domain.FileRecord {
	return e.audit(sourceName, content)
}

// AuditAndHealFile audits one file and, unless dryRun, writes the repair.
func (e *HealEngine) AuditAndHealFile(path string, dryRun bool) domain.FileRecord {
	return e.healFile(path, path, dryRun)
}

// BatchHeal audits every matching file below rootPath. Files whose
// workspace-relative path is ignored are skipped entirely.
func (e *HealEngine) BatchHeal(rootPath string, extensions []string, maxDepth int, dryRun bool) []domain.FileRecord {
	records := []domain.FileRecord{}
	for entry := range e.store.Crawl(rootPath, extensions, maxDepth) {
		if e.policy.IsIgnored(entry.RelPath, "") {
			e.logger.Debug("skipping ignored file", zap.String("path", entry.RelPath))
			continue
		}
		records = append(records, e.healFile(entry.AbsPath, entry.RelPath, dryRun))
	}
	e.logger.Info("batch complete",
		zap.String("root", rootPath),
		zap.Int("files", len(records)),
		zap.Bool("dry_run", dryRun),
	)
	return records
}

func (e *HealEngine) healFile(path, display string, dryRun bool) domain.FileRecord {
	content, err := e.store.ReadText(path)
	if err != nil {
		e.logger.Warn("cannot read file", zap.String("path", path), zap.Error(err))
		return domain.FileRecord{FilePath: display, Success: false, Error: err.Error()}
	}

	rec := e.audit(display, content)
	if dryRun || !rec.HasChange() {
		return rec
	}

	if e.opts.Backup {
		backup, err := e.store.CreateBackup(path)
		if err != nil {
			e.logger.Warn("backup failed, file left untouched", zap.String("path", path), zap.Error(err))
			rec.Success = false
			rec.Error = err.Error()
			return rec
		}
		rec.BackupPath = backup
	}

	healed := *rec.HealedContent
	if err := e.store.AtomicWrite(path, healed); err != nil {
		e.logger.Warn("write failed, file left untouched", zap.String("path", path), zap.Error(err))
		rec.Success = false
		rec.Error = err.Error()
		return rec
	}

	rec.Written = true
	rec.Findings = e.check(healed)
	rec.Score = domain.ComputeScore(rec.Findings)
	rec.Success = rec.Score >= e.policy.Threshold()
	e.logger.Info("healed file", zap.String("path", path), zap.String("backup", rec.BackupPath))
	return rec
}

// audit checks content and computes the repair without touching disk.
func (e *HealEngine) audit(name, content string) domain.FileRecord {
	findings := e.check(content)
	score := domain.ComputeScore(findings)

	rec := domain.FileRecord{
		FilePath:   name,
		RawContent: content,
		Success:    score >= e.policy.Threshold(),
		Score:      score,
		Findings:   findings,
	}

	healed := content
	for _, r := range e.active() {
		healed = r.Heal(healed)
	}
	if healed != content {
		rec.HealedContent = domain.StringPtr(healed)
	}
	return rec
}

func (e *HealEngine) check(content string) []domain.Finding {
	var findings []domain.Finding
	for _, r := range e.active() {
		findings = append(findings, r.Check(content)...)
	}
	return findings
}

func (e *HealEngine) active() []rules.Rule {
	out := make([]rules.Rule, 0, len(e.rules))
	for _, r := range e.rules {
		if !e.policy.AnalyzerEnabled(r.ID()) || e.policy.IsIgnored("", r.ID()) {
			continue
		}
		out = append(out, r)
	}
	return out
}
