package agentboard

import "strings"

// Predicate decides whether a record matches. Predicates address canonical fields by name.
type Predicate func(r Fielder) bool

// Query returns the records matching every predicate, in their original order.
// The result is never nil.
func Query[R Fielder](records []R, preds ...Predicate) []R {
	out := make([]R, 0, len(records))
	for _, r := range records {
		if matches(r, preds) {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the number of records matching every predicate. All dashboard metrics
// are a Count over some predicate list.
func Count[R Fielder](records []R, preds ...Predicate) int {
	n := 0
	for _, r := range records {
		if matches(r, preds) {
			n++
		}
	}
	return n
}

// Head returns the first n records in their existing order.
func Head[R any](records []R, n int) []R {
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}
	out := make([]R, n)
	copy(out, records[:n])
	return out
}

func matches(r Fielder, preds []Predicate) bool {
	for _, p := range preds {
		if p != nil && !p(r) {
			return false
		}
	}
	return true
}

// And composes predicates; the result matches when all of them do.
func And(preds ...Predicate) Predicate {
	return func(r Fielder) bool {
		return matches(r, preds)
	}
}

// Search matches records where term is a case-insensitive substring of any of fields.
// An empty term matches everything; any other term, whitespace included, is matched as given.
func Search(term string, fields ...string) Predicate {
	needle := strings.ToLower(term)
	return func(r Fielder) bool {
		if needle == "" {
			return true
		}
		for _, f := range fields {
			v, ok := r.Field(f)
			if ok && strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
		return false
	}
}

// Equals matches records whose field equals value. The All sentinel matches everything.
func Equals(field, value string) Predicate {
	return func(r Fielder) bool {
		if value == All {
			return true
		}
		v, ok := r.Field(field)
		return ok && v == value
	}
}

// In matches records whose field is one of values. A set containing All matches everything.
func In(field string, values ...string) Predicate {
	set := make(map[string]struct{}, len(values))
	passthrough := false
	for _, v := range values {
		if v == All {
			passthrough = true
		}
		set[v] = struct{}{}
	}
	return func(r Fielder) bool {
		if passthrough {
			return true
		}
		v, ok := r.Field(field)
		if !ok {
			return false
		}
		_, hit := set[v]
		return hit
	}
}

// DateContains matches records whose date field contains date as a substring, so a
// timestamp with a time-of-day suffix still matches its day. An empty date matches everything.
func DateContains(field, date string) Predicate {
	date = strings.TrimSpace(date)
	return func(r Fielder) bool {
		if date == "" {
			return true
		}
		v, ok := r.Field(field)
		return ok && strings.Contains(v, date)
	}
}
