package domain

// Per-finding deductions from a perfect score of 100.
const (
	PenaltyError   = 30
	PenaltyWarning = 10
	PenaltyInfo    = 2
)

// Penalty returns the score deduction for one finding of the given severity.
func Penalty(severity string) int {
	switch severity {
	case SeverityError:
		return PenaltyError
	case SeverityWarning:
		return PenaltyWarning
	case SeverityInfo:
		return PenaltyInfo
	default:
		return 0
	}
}

// ComputeScore is 100 minus the penalties of findings, floored at 0.
func ComputeScore(findings []Finding) int {
	score := 100
	for _, f := range findings {
		score -= Penalty(f.Severity)
	}
	return max(0, score)
}

func GradeFor(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}
