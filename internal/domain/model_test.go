package domain_test

import (
	"testing"

	"github.com/akeso/akeso/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score int
		grade string
	}{
		{95, "A+"}, {85, "A"}, {75, "B"}, {65, "C"}, {55, "D"}, {45, "F"}, {0, "F"}, {100, "A+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.grade, domain.GradeFor(tt.score), "score %d", tt.score)
	}
}

func TestComputeScore(t *testing.T) {
	findings := []domain.Finding{
		{Severity: domain.SeverityError},
		{Severity: domain.SeverityWarning},
		{Severity: domain.SeverityInfo},
		{Severity: "unknown"},
	}
	assert.Equal(t, 58, domain.ComputeScore(findings))
	assert.Equal(t, 100, domain.ComputeScore(nil))
}

func TestComputeScore_FloorsAtZero(t *testing.T) {
	findings := make([]domain.Finding, 5)
	for i := range findings {
		findings[i].Severity = domain.SeverityError
	}
	assert.Equal(t, 0, domain.ComputeScore(findings))
}
