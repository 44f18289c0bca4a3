package filter

// Compile turns a filter request into a predicate. It never fails: an incomplete
// or unrecognized request compiles to the match-everything predicate.
//
// Stored values may be numbers in one record and numeric-looking strings in
// another, so numeric-like search text always gets a numeric equality arm ORed
// with the string arm.
func Compile(req Request) Predicate {
	col := req.Column
	if col == "" {
		return Predicate{}
	}
	if req.Condition == Empty {
		return NewEmpty(col)
	}
	if req.Search == "" {
		return Predicate{}
	}

	num, numeric := ParseNumeric(req.Search)

	switch req.Condition {
	case Equals:
		if numeric {
			return NewOr(NewNumberEqual(col, num), NewStringEqual(col, req.Search))
		}
		return NewPattern(col, "^"+Escape(req.Search)+"$")
	case Contains, Starts, Ends:
		pattern := anchor(req.Condition, Escape(req.Search))
		if numeric {
			return NewOr(NewNumberEqual(col, num), NewPattern(col, pattern))
		}
		return NewPattern(col, pattern)
	default:
		return Predicate{}
	}
}

// anchor wraps an already escaped core with the anchors the condition needs.
// These are the only metacharacters the compiler introduces.
func anchor(c Condition, escaped string) string {
	switch c {
	case Starts:
		return "^" + escaped
	case Ends:
		return escaped + "$"
	default:
		return escaped
	}
}

// Shape names the predicate layout for metrics labels.
func Shape(p Predicate) string {
	if p.op != OpOr {
		return p.op.String()
	}
	shape := "or"
	for _, sub := range p.any {
		shape += "_" + sub.op.String()
	}
	return shape
}
