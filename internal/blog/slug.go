package blog

import (
	"fmt"
	"strings"
	"time"
)

// slugger allocates collision-free slugs within one sync run. Bases that
// repeat (two posts published the same day) get incrementing two-digit
// suffixes: the first gets 01, the next 02, and so on.
type slugger struct {
	counts map[string]int
	used   map[string]struct{}
}

func newSlugger() *slugger {
	return &slugger{
		counts: make(map[string]int),
		used:   make(map[string]struct{}),
	}
}

// allocate returns base + the next free two-digit suffix and marks it used.
func (s *slugger) allocate(base string) string {
	count := s.counts[base] + 1
	s.counts[base] = count
	slug := fmt.Sprintf("%s%02d", base, count)
	for {
		if _, taken := s.used[slug]; !taken {
			break
		}
		count = s.counts[base] + 1
		s.counts[base] = count
		slug = fmt.Sprintf("%s%02d", base, count)
	}
	s.used[slug] = struct{}{}
	return slug
}

// dateDigits converts an ISO date or datetime into YYYYMMDD digits.
// Returns "" when the value is empty or unparseable.
func dateDigits(value string) string {
	if value == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.Parse("2006-01-02", value)
		if err != nil {
			return ""
		}
	}
	return t.Format("20060102")
}

// digitsOf strips everything but decimal digits from value.
func digitsOf(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
