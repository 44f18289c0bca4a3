package filter

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Matcher evaluates a Predicate against decoded records in process, for stores
// without native pattern matching. Semantics follow document stores: a number
// literal only equals native numbers, a string literal only equals strings,
// patterns only match strings.
type Matcher struct {
	pred Predicate
	re   *regexp.Regexp
	any  []*Matcher
}

// NewMatcher prepares p for repeated evaluation, compiling patterns once.
func NewMatcher(p Predicate) (*Matcher, error) {
	m := &Matcher{pred: p}
	switch p.op {
	case OpPattern:
		re, err := regexp.Compile("(?i)" + p.pattern)
		if err != nil {
			return nil, fmt.Errorf("compile pattern for %q: %w", p.field, err)
		}
		m.re = re
	case OpOr:
		m.any = make([]*Matcher, 0, len(p.any))
		for _, sub := range p.any {
			sm, err := NewMatcher(sub)
			if err != nil {
				return nil, err
			}
			m.any = append(m.any, sm)
		}
	}
	return m, nil
}

// Match reports whether rec satisfies the predicate.
func (m *Matcher) Match(rec map[string]any) bool {
	p := m.pred
	switch p.op {
	case OpAll:
		return true
	case OpOr:
		for _, sm := range m.any {
			if sm.Match(rec) {
				return true
			}
		}
		return false
	}

	v, present := rec[p.field]
	switch p.op {
	case OpEmpty:
		return !present || v == nil || v == ""
	case OpEqual:
		switch want := p.value.(type) {
		case float64:
			got, ok := numberValue(v)
			return ok && got == want
		case string:
			got, ok := v.(string)
			return ok && got == want
		}
		return false
	case OpPattern:
		s, ok := v.(string)
		return ok && m.re.MatchString(s)
	default:
		return false
	}
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
