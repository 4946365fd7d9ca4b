package domain

import (
	"iter"
	"time"
)

// Engine audits manifest content and proposes healed content.
// Failures on a single item are reported inside its FileRecord.
type Engine interface {
	AuditStream(content, sourceName string) FileRecord
	AuditAndHealFile(path string, dryRun bool) FileRecord
	BatchHeal(rootPath string, extensions []string, maxDepth int, dryRun bool) []FileRecord
}

// CrawlEntry is one file discovered by a Store crawl.
type CrawlEntry struct {
	AbsPath string
	RelPath string
}

// Store performs workspace-scoped file I/O.
type Store interface {
	ReadText(path string) (string, error)
	AtomicWrite(path, content string) error
	CreateBackup(path string) (string, error)
	Crawl(root string, extensions []string, maxDepth int) iter.Seq[CrawlEntry]
}

// IgnorePolicy answers exemption questions from the merged configuration.
type IgnorePolicy interface {
	IsIgnored(path, ruleID string) bool
	AnalyzerEnabled(name string) bool
	Threshold() int
}

// Reporter serializes an envelope. The output is treated as opaque text.
type Reporter interface {
	Generate(env Envelope, duration time.Duration) (string, error)
}
