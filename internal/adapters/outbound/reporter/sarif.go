package reporter

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"time"

	"github.com/akeso/akeso/internal/domain"
	"github.com/akeso/akeso/internal/domain/rules"
)

const (
	sarifSchema  = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	sarifVersion = "2.1.0"

	// ProcessingErrorRule is reported for files that could not be read or written.
	ProcessingErrorRule = "akeso/processing-error"
)

// SARIF renders the envelope as a SARIF 2.1.0 log with a single run.
type SARIF struct {
	version string
}

func NewSARIF(version string) *SARIF { return &SARIF{version: version} }

type sarifDocument struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}
type sarifRun struct {
	Tool       sarifTool       `json:"tool"`
	Results    []sarifResult   `json:"results"`
	Properties sarifProperties `json:"properties"`
}
type sarifProperties struct {
	DurationSeconds float64 `json:"durationSeconds"`
	RunID           string  `json:"runId,omitempty"`
	HealedCount     int     `json:"healedCount"`
	SuccessCount    int     `json:"successCount"`
}
type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}
type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}
type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}
type sarifResult struct {
	RuleID  string          `json:"ruleId"`
	Level   string          `json:"level"`
	Message sarifMessage    `json:"message"`
	Locs    []sarifLocation `json:"locations,omitempty"`
}
type sarifMessage struct {
	Text string `json:"text"`
}
type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}
type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}
type sarifArtifact struct {
	URI string `json:"uri"`
}
type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func (s *SARIF) Generate(env domain.Envelope, duration time.Duration) (string, error) {
	results := []sarifResult{}
	seen := map[string]bool{}

	for _, rec := range env.ProcessedFiles {
		uri := filepath.ToSlash(rec.FilePath)
		for _, f := range rec.Findings {
			seen[f.RuleID] = true
			results = append(results, sarifResult{
				RuleID:  f.RuleID,
				Level:   sarifLevel(f.Severity),
				Message: sarifMessage{Text: f.Message},
				Locs:    []sarifLocation{location(uri, f.Line)},
			})
		}
		if rec.Error != "" {
			seen[ProcessingErrorRule] = true
			results = append(results, sarifResult{
				RuleID:  ProcessingErrorRule,
				Level:   "error",
				Message: sarifMessage{Text: rec.Error},
				Locs:    []sarifLocation{location(uri, 0)},
			})
		}
	}

	doc := sarifDocument{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: sarifDriver{Name: ToolName, Version: s.version, Rules: driverRules(seen)}},
			Results: results,
			Properties: sarifProperties{
				DurationSeconds: roundSeconds(duration),
				RunID:           env.RunID,
				HealedCount:     env.HealedCount,
				SuccessCount:    env.SuccessCount,
			},
		}},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func location(uri string, line int) sarifLocation {
	loc := sarifLocation{PhysicalLocation: sarifPhysical{ArtifactLocation: sarifArtifact{URI: uri}}}
	if line > 0 {
		loc.PhysicalLocation.Region = &sarifRegion{StartLine: line}
	}
	return loc
}

func driverRules(ids map[string]bool) []sarifRule {
	out := make([]sarifRule, 0, len(ids))
	for id := range ids {
		out = append(out, sarifRule{ID: id, ShortDescription: sarifMessage{Text: ruleDescription(id)}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func ruleDescription(id string) string {
	if id == ProcessingErrorRule {
		return "file could not be processed"
	}
	if r, ok := rules.ByID(id); ok {
		return r.Description()
	}
	return id
}

func sarifLevel(severity string) string {
	switch severity {
	case domain.SeverityError:
		return "error"
	case domain.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
