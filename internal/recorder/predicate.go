package recorder

import (
	"bytes"
	"strings"
)

// Predicate decides whether a record belongs in a search result.
type Predicate func(key string, value []byte) bool

// All matches every record.
func All(string, []byte) bool { return true }

// KeyPrefix matches keys starting with prefix.
func KeyPrefix(prefix string) Predicate {
	return func(key string, _ []byte) bool {
		return strings.HasPrefix(key, prefix)
	}
}

// KeyRange matches keys in [from, until). An empty bound is open.
func KeyRange(from, until string) Predicate {
	return func(key string, _ []byte) bool {
		if from != "" && key < from {
			return false
		}
		if until != "" && key >= until {
			return false
		}
		return true
	}
}

// Contains matches records whose key or value contains sub.
// With fold set, the comparison ignores case.
func Contains(sub string, fold bool) Predicate {
	if fold {
		lower := strings.ToLower(sub)
		return func(key string, value []byte) bool {
			return strings.Contains(strings.ToLower(key), lower) ||
				bytes.Contains(bytes.ToLower(value), []byte(lower))
		}
	}
	return func(key string, value []byte) bool {
		return strings.Contains(key, sub) || bytes.Contains(value, []byte(sub))
	}
}

// And matches records that every predicate matches.
// Nil predicates are skipped; And() matches everything.
func And(preds ...Predicate) Predicate {
	return func(key string, value []byte) bool {
		for _, p := range preds {
			if p != nil && !p(key, value) {
				return false
			}
		}
		return true
	}
}
