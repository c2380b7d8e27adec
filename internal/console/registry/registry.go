package registry

import (
	"strings"

	"github.com/prestigesms/sms-console/internal/console/domain"
)

// Registry is the static mapping of business phone lines. It is built once at
// startup from configuration and is safe for concurrent reads; there is no
// runtime mutation.
type Registry struct {
	lines []domain.BusinessLine
}

// New creates a Registry over the configured lines, preserving their order.
func New(lines []domain.BusinessLine) *Registry {
	return &Registry{lines: lines}
}

// Lines returns the configured lines in order.
func (r *Registry) Lines() []domain.BusinessLine {
	out := make([]domain.BusinessLine, len(r.lines))
	copy(out, r.lines)
	return out
}

// RecommendedLine picks the sending line for a destination number by
// country-code prefix: +36 gets the first Hungary line, +1 the US line,
// anything else the first configured line.
func (r *Registry) RecommendedLine(destination string) domain.BusinessLine {
	if len(r.lines) == 0 {
		return domain.BusinessLine{}
	}
	switch {
	case strings.HasPrefix(destination, "+36"):
		if line, ok := r.firstWithPrefix("+36"); ok {
			return line
		}
	case strings.HasPrefix(destination, "+1"):
		if line, ok := r.firstWithPrefix("+1"); ok {
			return line
		}
	}
	return r.lines[0]
}

func (r *Registry) firstWithPrefix(prefix string) (domain.BusinessLine, bool) {
	for _, line := range r.lines {
		if strings.HasPrefix(line.Number, prefix) {
			return line, true
		}
	}
	return domain.BusinessLine{}, false
}

// LineFor returns the configured line matching the number exactly.
func (r *Registry) LineFor(number string) (domain.BusinessLine, bool) {
	for _, line := range r.lines {
		if line.Number == number {
			return line, true
		}
	}
	return domain.BusinessLine{}, false
}

// DisplayName resolves a number to its line name, falling back to the raw
// number when no configured line matches.
func (r *Registry) DisplayName(number string) string {
	if line, ok := r.LineFor(number); ok {
		return line.Name
	}
	return number
}
