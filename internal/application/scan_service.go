package application

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akeso/akeso/internal/domain"
	"github.com/akeso/akeso/internal/logging"
)

// StdinPath selects stream mode when passed as a path.
const StdinPath = "-"

// Presenter renders records for people. It is implemented by the tui adapter.
type Presenter interface {
	Record(r domain.FileRecord) string
	Summary(records []domain.FileRecord, summaryOnly bool) string
	Diff(original, healed, label string, mode domain.DiffMode) string
	HealReport(records []domain.FileRecord, dryRun bool) string
}

// ScanRequest describes one read-only audit job.
type ScanRequest struct {
	Path        string
	// DisplayPath is the argument as the user typed it; hints fall back to Path.
	DisplayPath string
	Extensions  []string
	MaxDepth    int
	Output      domain.OutputFormat
	ShowDiff    bool
	DiffMode    domain.DiffMode
	SummaryOnly bool
	Workspace   string
	CommitHash  string
	Threshold   int
}

func (r ScanRequest) displayPath() string {
	if r.DisplayPath != "" {
		return r.DisplayPath
	}
	return r.Path
}

// ScanOutcome is what a job produced and how the process should exit.
type ScanOutcome struct {
	Records  []domain.FileRecord
	Issues   []domain.FileRecord
	ExitCode int
	Duration time.Duration
}

// ScanService orchestrates a scan:
// choose input mode → audit (always dry-run) → report → exit code.
type ScanService struct {
	engine    domain.Engine
	reporters map[domain.OutputFormat]domain.Reporter
	presenter Presenter
	logger    *zap.Logger
}

func NewScanService(
	engine domain.Engine,
	reporters map[domain.OutputFormat]domain.Reporter,
	presenter Presenter,
	logger *zap.Logger,
) *ScanService {
	return &ScanService{
		engine:    engine,
		reporters: reporters,
		presenter: presenter,
		logger:    logging.OrNop(logger),
	}
}

// Run executes req, reading stream input from in and writing every
// human or machine report to out.
func (s *ScanService) Run(req ScanRequest, in io.Reader, out io.Writer) (ScanOutcome, error) {
	reporter, err := s.reporterFor(req.Output)
	if err != nil {
		return ScanOutcome{}, err
	}

	start := time.Now()
	mode := detectMode(req.Path)
	s.logger.Debug("scan started", zap.String("path", req.Path), zap.String("mode", mode.String()))

	var records []domain.FileRecord
	switch mode {
	case modeStream:
		content, err := io.ReadAll(in)
		if err != nil {
			return ScanOutcome{}, fmt.Errorf("reading standard input: %w", err)
		}
		records = []domain.FileRecord{s.engine.AuditStream(string(content), domain.StdinSource)}
	case modeFile:
		records = []domain.FileRecord{s.engine.AuditAndHealFile(req.Path, true)}
	default:
		records = s.engine.BatchHeal(req.Path, req.Extensions, req.MaxDepth, true)
	}

	outcome := ScanOutcome{
		Records:  records,
		Issues:   domain.Issues(records),
		ExitCode: domain.ExitCode(records),
		Duration: time.Since(start),
	}

	if reporter != nil {
		env := s.envelope(req, records)
		payload, err := reporter.Generate(env, outcome.Duration)
		if err != nil {
			return outcome, fmt.Errorf("generating %s report: %w", req.Output, err)
		}
		_, err = fmt.Fprintln(out, payload)
		return outcome, err
	}

	s.writeText(req, mode, records, out)
	if outcome.ExitCode != 0 {
		if mode == modeStream {
			fmt.Fprintf(out, "\nFound %d issues in input stream.\n", len(outcome.Issues))
		} else {
			fmt.Fprintf(out, "\nTip: Run akeso heal %s to fix %d detected issues.\n", req.displayPath(), len(outcome.Issues))
		}
	}
	return outcome, nil
}

func (s *ScanService) writeText(req ScanRequest, mode inputMode, records []domain.FileRecord, out io.Writer) {
	if mode != modeBatch {
		rec := records[0]
		fmt.Fprint(out, s.presenter.Record(rec))
		if req.ShowDiff && rec.HasChange() {
			fmt.Fprint(out, s.presenter.Diff(rec.RawContent, *rec.HealedContent, rec.FilePath, req.DiffMode))
		}
		return
	}

	fmt.Fprint(out, s.presenter.Summary(records, req.SummaryOnly))
	if !req.ShowDiff {
		return
	}
	changed := domain.Changed(records)
	if len(changed) == 0 {
		if !req.SummaryOnly {
			fmt.Fprintln(out, "\nNo changes proposed (files are healthy).")
		}
		return
	}
	fmt.Fprintf(out, "\nFound %d files with proposed repairs:\n", len(changed))
	for _, rec := range changed {
		fmt.Fprint(out, s.presenter.Diff(rec.RawContent, *rec.HealedContent, rec.FilePath, req.DiffMode))
	}
}

// reporterFor returns nil for text output.
func (s *ScanService) reporterFor(format domain.OutputFormat) (domain.Reporter, error) {
	return lookupReporter(s.reporters, format)
}

func (s *ScanService) envelope(req ScanRequest, records []domain.FileRecord) domain.Envelope {
	return newEnvelope(records, req.Workspace, req.CommitHash, req.Threshold)
}

func lookupReporter(reporters map[domain.OutputFormat]domain.Reporter, format domain.OutputFormat) (domain.Reporter, error) {
	switch format {
	case domain.OutputText, "":
		return nil, nil
	case domain.OutputJSON, domain.OutputSARIF:
		if r, ok := reporters[format]; ok {
			return r, nil
		}
		return nil, fmt.Errorf("no reporter registered for %s output", format)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func newEnvelope(records []domain.FileRecord, workspace, commit string, threshold int) domain.Envelope {
	env := domain.NewEnvelope(records)
	env.RunID = uuid.NewString()
	env.Workspace = workspace
	env.CommitHash = commit
	env.Threshold = threshold
	return env
}

type inputMode int

const (
	modeBatch inputMode = iota
	modeFile
	modeStream
)

func (m inputMode) String() string {
	switch m {
	case modeStream:
		return "stream"
	case modeFile:
		return "file"
	default:
		return "batch"
	}
}

// detectMode maps "-" to stream input, a regular file to single-file mode
// and anything else, including missing paths, to a batch crawl.
func detectMode(path string) inputMode {
	if path == StdinPath {
		return modeStream
	}
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return modeFile
	}
	return modeBatch
}
