package topics

import (
	"sort"
	"strings"
	"testing"
)

func TestResolveKnownTopics(t *testing.T) {
	tests := []struct {
		key      string
		contains string
	}{
		{"technology", "artificial intelligence"},
		{"business", "economy"},
		{"politics", "election"},
		{"sports", "football"},
		{"entertainment", "movies"},
		{"science", "space"},
		{"health", "wellness"},
		{"environment", "climate"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			expr := Resolve(tt.key)
			if expr == "" {
				t.Fatalf("Resolve(%q) returned empty expression", tt.key)
			}
			if !strings.Contains(expr, tt.contains) {
				t.Fatalf("Resolve(%q) = %q, want it to contain %q", tt.key, expr, tt.contains)
			}
			if !strings.Contains(expr, " OR ") {
				t.Fatalf("Resolve(%q) = %q, expected an OR-combined expression", tt.key, expr)
			}
		})
	}
}

func TestResolveUnknownFallsBackToDefault(t *testing.T) {
	def := Resolve(Default)
	for _, key := range []string{"", "crypto", "TECHNOLOGY", "weather", "news "} {
		if got := Resolve(key); got != def {
			t.Fatalf("Resolve(%q) = %q, want default expression %q", key, got, def)
		}
	}
}

func TestCanonical(t *testing.T) {
	if got := Canonical("sports"); got != "sports" {
		t.Fatalf("Canonical(sports) = %q", got)
	}
	if got := Canonical("not-a-topic"); got != Default {
		t.Fatalf("Canonical(not-a-topic) = %q, want %q", got, Default)
	}
	if got := Canonical(""); got != Default {
		t.Fatalf("Canonical(\"\") = %q, want %q", got, Default)
	}
}

func TestIsKnown(t *testing.T) {
	if !IsKnown("health") {
		t.Fatal("IsKnown(health) = false")
	}
	if IsKnown("Health") {
		t.Fatal("IsKnown(Health) = true; keys are case-sensitive")
	}
	if IsKnown("") {
		t.Fatal("IsKnown(\"\") = true")
	}
}

func TestKeysSortedAndComplete(t *testing.T) {
	keys := Keys()
	if len(keys) != 8 {
		t.Fatalf("expected 8 topic keys, got %d: %v", len(keys), keys)
	}
	if !sort.StringsAreSorted(keys) {
		t.Fatalf("Keys() not sorted: %v", keys)
	}
	if !IsKnown(Default) {
		t.Fatalf("default topic %q missing from the topic set", Default)
	}
	for _, k := range keys {
		if Resolve(k) == Resolve("zzz-unknown") && k != Default {
			t.Fatalf("topic %q resolves to the default expression; mapping is missing an entry", k)
		}
	}
}
