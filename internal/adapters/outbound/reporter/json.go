// Package reporter serializes scan envelopes for machines: plain JSON and SARIF.
package reporter

import (
	"encoding/json"
	"math"
	"time"

	"github.com/akeso/akeso/internal/domain"
)

// ToolName identifies akeso in every report.
const ToolName = "akeso"

// JSON renders the envelope as an indented JSON document.
type JSON struct {
	version string
}

func NewJSON(version string) *JSON { return &JSON{version: version} }

type jsonReport struct {
	Tool            string              `json:"tool"`
	Version         string              `json:"version"`
	RunID           string              `json:"run_id,omitempty"`
	Workspace       string              `json:"workspace,omitempty"`
	Commit          string              `json:"commit,omitempty"`
	DurationSeconds float64             `json:"duration_seconds"`
	Threshold       int                 `json:"threshold"`
	HealedCount     int                 `json:"healed_count"`
	SuccessCount    int                 `json:"success_count"`
	ProcessedFiles  []domain.FileRecord `json:"processed_files"`
}

func (j *JSON) Generate(env domain.Envelope, duration time.Duration) (string, error) {
	report := jsonReport{
		Tool:            ToolName,
		Version:         j.version,
		RunID:           env.RunID,
		Workspace:       env.Workspace,
		Commit:          env.CommitHash,
		DurationSeconds: roundSeconds(duration),
		Threshold:       env.Threshold,
		HealedCount:     env.HealedCount,
		SuccessCount:    env.SuccessCount,
		ProcessedFiles:  env.ProcessedFiles,
	}
	if report.ProcessedFiles == nil {
		report.ProcessedFiles = []domain.FileRecord{}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}
