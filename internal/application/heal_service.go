package application

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/akeso/akeso/internal/domain"
	"github.com/akeso/akeso/internal/logging"
)

// HealRequest describes one repair job.
type HealRequest struct {
	Path       string
	Extensions []string
	MaxDepth   int
	DryRun     bool
	Output     domain.OutputFormat
	ShowDiff   bool
	DiffMode   domain.DiffMode
	Workspace  string
	CommitHash string
	Threshold  int
}

// HealService orchestrates a heal:
// choose input mode → audit and write → report → exit code.
// Stream input behaves like a filter: the repaired content goes to out.
type HealService struct {
	engine    domain.Engine
	reporters map[domain.OutputFormat]domain.Reporter
	presenter Presenter
	logger    *zap.Logger
}

func NewHealService(
	engine domain.Engine,
	reporters map[domain.OutputFormat]domain.Reporter,
	presenter Presenter,
	logger *zap.Logger,
) *HealService {
	return &HealService{
		engine:    engine,
		reporters: reporters,
		presenter: presenter,
		logger:    logging.OrNop(logger),
	}
}

func (s *HealService) Run(req HealRequest, in io.Reader, out io.Writer) (ScanOutcome, error) {
	reporter, err := lookupReporter(s.reporters, req.Output)
	if err != nil {
		return ScanOutcome{}, err
	}

	start := time.Now()
	mode := detectMode(req.Path)

	if mode == modeStream {
		content, err := io.ReadAll(in)
		if err != nil {
			return ScanOutcome{}, fmt.Errorf("reading standard input: %w", err)
		}
		rec := s.engine.AuditStream(string(content), domain.StdinSource)
		if _, err := io.WriteString(out, rec.Healed()); err != nil {
			return ScanOutcome{}, err
		}
		return s.outcome([]domain.FileRecord{rec}, start), nil
	}

	var records []domain.FileRecord
	if mode == modeFile {
		records = []domain.FileRecord{s.engine.AuditAndHealFile(req.Path, req.DryRun)}
	} else {
		records = s.engine.BatchHeal(req.Path, req.Extensions, req.MaxDepth, req.DryRun)
	}
	outcome := s.outcome(records, start)

	written := 0
	for _, r := range records {
		if r.Written {
			written++
		}
	}
	s.logger.Info("heal finished",
		zap.String("path", req.Path),
		zap.Int("files", len(records)),
		zap.Int("written", written),
		zap.Bool("dry_run", req.DryRun),
	)

	if reporter != nil {
		env := newEnvelope(records, req.Workspace, req.CommitHash, req.Threshold)
		payload, err := reporter.Generate(env, outcome.Duration)
		if err != nil {
			return outcome, fmt.Errorf("generating %s report: %w", req.Output, err)
		}
		_, err = fmt.Fprintln(out, payload)
		return outcome, err
	}

	if mode == modeFile {
		fmt.Fprint(out, s.presenter.Record(records[0]))
	} else {
		fmt.Fprint(out, s.presenter.Summary(records, false))
	}
	if req.ShowDiff {
		for _, rec := range domain.Changed(records) {
			fmt.Fprint(out, s.presenter.Diff(rec.RawContent, *rec.HealedContent, rec.FilePath, req.DiffMode))
		}
	}
	fmt.Fprint(out, s.presenter.HealReport(records, req.DryRun))
	return outcome, nil
}

// outcome fails the job when any record is still below threshold or errored.
func (s *HealService) outcome(records []domain.FileRecord, start time.Time) ScanOutcome {
	var failed []domain.FileRecord
	for _, r := range records {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	code := 0
	if len(failed) > 0 {
		code = 1
	}
	return ScanOutcome{Records: records, Issues: failed, ExitCode: code, Duration: time.Since(start)}
}
