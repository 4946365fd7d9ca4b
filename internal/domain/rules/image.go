package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/akeso/akeso/internal/domain"
)

var imageLine = regexp.MustCompile(`^\s*(?:-\s+)?image:\s*["']?([^"'\s#]+)`)

// NoLatestTag flags container images pinned to "latest" or to no tag at all.
// It only reports; choosing a version is left to the author.
type NoLatestTag struct{}

func (r NoLatestTag) ID() string       { return IDOf(r) }
func (r NoLatestTag) Severity() string { return domain.SeverityWarning }
func (r NoLatestTag) Description() string {
	return "Container images must be pinned to a tag other than latest"
}

func (r NoLatestTag) Check(content string) []domain.Finding {
	var out []domain.Finding
	for i, l := range lines(content) {
		m := imageLine.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		if ref := m[1]; floating(ref) {
			out = append(out, finding(r, i+1, false, fmt.Sprintf("image %q is not pinned to a version", ref)))
		}
	}
	return out
}

func (r NoLatestTag) Heal(content string) string { return content }

// floating reports whether an image reference resolves to a moving tag.
func floating(ref string) bool {
	if strings.Contains(ref, "@") {
		return false
	}
	name := ref[strings.LastIndex(ref, "/")+1:]
	_, tag, tagged := strings.Cut(name, ":")
	return !tagged || tag == "latest"
}
