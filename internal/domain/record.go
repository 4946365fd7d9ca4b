package domain

// StdinSource is the file path reported for content read from standard input.
const StdinSource = "<stdin>"

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Finding is a single rule violation detected in a file.
type Finding struct {
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
	Healable bool   `json:"healable"`
}

// FileRecord is the outcome of auditing one file or stream.
// Records are produced by an Engine and never mutated afterwards.
type FileRecord struct {
	FilePath      string    `json:"file_path"`
	RawContent    string    `json:"raw_content"`
	HealedContent *string   `json:"healed_content,omitempty"`
	Success       bool      `json:"success"`
	Written       bool      `json:"written"`
	Score         int       `json:"score"`
	Findings      []Finding `json:"findings,omitempty"`
	BackupPath    string    `json:"backup_path,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// HasChange reports whether the engine proposed content that differs from the original.
func (r FileRecord) HasChange() bool {
	return r.HealedContent != nil && *r.HealedContent != r.RawContent
}

// NeedsAttention reports whether the record failed or carries a proposed change.
func (r FileRecord) NeedsAttention() bool {
	return !r.Success || r.HasChange()
}

// Healed returns the healed content, or the raw content when no fix applies.
func (r FileRecord) Healed() string {
	if r.HealedContent == nil {
		return r.RawContent
	}
	return *r.HealedContent
}

// Envelope aggregates the records of one job for machine-readable reporters.
type Envelope struct {
	ProcessedFiles []FileRecord `json:"processed_files"`
	HealedCount    int          `json:"healed_count"`
	SuccessCount   int          `json:"success_count"`
	RunID          string       `json:"run_id,omitempty"`
	Workspace      string       `json:"workspace,omitempty"`
	CommitHash     string       `json:"commit_hash,omitempty"`
	Threshold      int          `json:"threshold,omitempty"`
}

// NewEnvelope counts healed and successful records. The record order is kept.
func NewEnvelope(records []FileRecord) Envelope {
	env := Envelope{ProcessedFiles: records}
	if env.ProcessedFiles == nil {
		env.ProcessedFiles = []FileRecord{}
	}
	for _, r := range records {
		if r.Written || r.HealedContent != nil {
			env.HealedCount++
		}
		if r.Success {
			env.SuccessCount++
		}
	}
	return env
}

// Issues returns the records that failed or carry a proposed change.
func Issues(records []FileRecord) []FileRecord {
	var out []FileRecord
	for _, r := range records {
		if r.NeedsAttention() {
			out = append(out, r)
		}
	}
	return out
}

// Changed returns the records whose healed content differs from the original.
func Changed(records []FileRecord) []FileRecord {
	var out []FileRecord
	for _, r := range records {
		if r.HasChange() {
			out = append(out, r)
		}
	}
	return out
}

// ExitCode is 1 when any record needs attention, 0 otherwise.
func ExitCode(records []FileRecord) int {
	if len(Issues(records)) > 0 {
		return 1
	}
	return 0
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }
