// Package topics maps short topic keys to the canonical search expressions
// used when querying news sources.
package topics

import "sort"

// Default is the topic used when a request names no topic or an unknown one.
const Default = "technology"

// expressions maps each topic key to its OR-combined keyword expression.
// Read-only after process start; safe for concurrent use.
var expressions = map[string]string{
	"technology":    "technology OR AI OR artificial intelligence OR software OR hardware",
	"business":      "business OR economy OR market OR finance OR stocks",
	"politics":      "politics OR government OR election OR policy",
	"sports":        "sports OR football OR basketball OR soccer OR tennis",
	"entertainment": "entertainment OR movies OR music OR celebrities",
	"science":       "science OR research OR discovery OR space OR medicine",
	"health":        "health OR medical OR healthcare OR wellness",
	"environment":   "environment OR climate OR nature OR conservation",
}

// Resolve returns the search expression for a topic key. Unknown or empty
// keys resolve to the Default topic's expression; Resolve never fails.
func Resolve(key string) string {
	if expr, ok := expressions[key]; ok {
		return expr
	}
	return expressions[Default]
}

// Canonical returns key itself when it is a configured topic, otherwise
// Default. Callers use it to report which topic was actually queried.
func Canonical(key string) string {
	if IsKnown(key) {
		return key
	}
	return Default
}

// IsKnown reports whether key is a configured topic.
func IsKnown(key string) bool {
	_, ok := expressions[key]
	return ok
}

// Keys returns all topic keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(expressions))
	for k := range expressions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
