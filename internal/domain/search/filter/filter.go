// Package filter compiles grid filter requests (column, condition, search text)
// into store-neutral predicates over schema-less records.
package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition is the human-selected comparison applied to a column.
type Condition string

const (
	// Contains matches the search text anywhere in the value.
	Contains Condition = "contains"
	// Equals matches the whole value.
	Equals Condition = "equals"
	// Starts matches a value prefix.
	Starts Condition = "starts"
	// Ends matches a value suffix.
	Ends Condition = "ends"
	// Empty matches null, absent or empty-string values. Search text is ignored.
	Empty Condition = "empty"
)

// Request is the raw filter tuple as typed by the user. Empty strings mean absent.
type Request struct {
	Column    string
	Condition Condition
	Search    string
}

// Op is the node kind of a Predicate.
type Op uint8

const (
	// OpAll matches every record. It is the zero value.
	OpAll Op = iota
	// OpEqual matches a field equal to a literal number or string.
	OpEqual
	// OpPattern matches a string field against a case-insensitive pattern.
	OpPattern
	// OpEmpty matches a null, absent or empty-string field.
	OpEmpty
	// OpOr matches when any sub-predicate matches.
	OpOr
)

var opNames = [...]string{
	OpAll:     "all",
	OpEqual:   "equal",
	OpPattern: "pattern",
	OpEmpty:   "empty",
	OpOr:      "or",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "op(" + strconv.Itoa(int(o)) + ")"
}

// Predicate is an immutable boolean condition tree over record fields.
// The zero Predicate matches everything.
type Predicate struct {
	op      Op
	field   string
	value   any
	pattern string
	any     []Predicate
}

// NewNumberEqual matches fields holding the native number n.
func NewNumberEqual(field string, n float64) Predicate {
	return Predicate{op: OpEqual, field: field, value: n}
}

// NewStringEqual matches fields holding exactly the string s.
func NewStringEqual(field, s string) Predicate {
	return Predicate{op: OpEqual, field: field, value: s}
}

// NewPattern matches string fields against pattern, case-insensitively.
// The caller is responsible for escaping literal text with Escape.
func NewPattern(field, pattern string) Predicate {
	return Predicate{op: OpPattern, field: field, pattern: pattern}
}

// NewEmpty matches fields that are absent, null or the empty string.
func NewEmpty(field string) Predicate {
	return Predicate{op: OpEmpty, field: field}
}

// NewOr matches when any of preds matches.
func NewOr(preds ...Predicate) Predicate {
	return Predicate{op: OpOr, any: append([]Predicate(nil), preds...)}
}

// Op returns the node kind.
func (p Predicate) Op() Op { return p.op }

// Field returns the target field name (empty for OpAll and OpOr).
func (p Predicate) Field() string { return p.field }

// Value returns the literal of an OpEqual node: float64 or string.
func (p Predicate) Value() any { return p.value }

// Pattern returns the pattern of an OpPattern node.
func (p Predicate) Pattern() string { return p.pattern }

// Any returns the arms of an OpOr node.
func (p Predicate) Any() []Predicate { return p.any }

// MatchesAll reports whether the predicate places no restriction on records.
func (p Predicate) MatchesAll() bool { return p.op == OpAll }

// String renders the predicate for logs.
func (p Predicate) String() string {
	switch p.op {
	case OpAll:
		return "*"
	case OpEqual:
		if s, ok := p.value.(string); ok {
			return fmt.Sprintf("%s = %q", p.field, s)
		}
		return fmt.Sprintf("%s = %v", p.field, p.value)
	case OpPattern:
		return fmt.Sprintf("%s ~ /%s/i", p.field, p.pattern)
	case OpEmpty:
		return p.field + " is empty"
	case OpOr:
		parts := make([]string, len(p.any))
		for i, sub := range p.any {
			parts[i] = sub.String()
		}
		return "(" + strings.Join(parts, " | ") + ")"
	default:
		return p.op.String()
	}
}
