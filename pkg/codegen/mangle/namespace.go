package mangle

import "strconv"

// Namespace tracks identifiers already claimed within one enclosing scope
// (e.g. the Schemas namespace, or the set of fields of a single struct) and
// resolves collisions deterministically by appending a numeric suffix —
// the last-resort mechanism named in §4.1, used only after any
// domain-specific naming rule (such as the oneOf discriminator mapping
// rules in §4.4) has already had a chance to produce a distinct name.
type Namespace struct {
	mangler *Mangler
	used    map[string]int // claimed name -> next suffix to try
}

// NewNamespace creates an empty Namespace using m for mangling raw input
// strings. A nil m falls back to the Default Mangler.
func NewNamespace(m *Mangler) *Namespace {
	if m == nil {
		m = Default
	}
	return &Namespace{mangler: m, used: make(map[string]int)}
}

// Claim mangles raw and returns a name unique within this namespace,
// reserving it for future collision checks. Calling Claim twice with the
// same raw input is not idempotent by design — each call represents a
// distinct entity that needs its own identifier.
func (n *Namespace) Claim(raw string) string {
	return n.ClaimName(n.mangler.Mangle(raw))
}

// ClaimName reserves name directly (skipping mangling), for callers that
// already produced a target-language identifier through some other rule
// (e.g. a discriminator mapping key) and only need collision resolution.
func (n *Namespace) ClaimName(name string) string {
	next, taken := n.used[name]
	if !taken {
		n.used[name] = 1
		return name
	}
	for {
		candidate := name + strconv.Itoa(next)
		next++
		if _, clash := n.used[candidate]; !clash {
			n.used[name] = next
			n.used[candidate] = 1
			return candidate
		}
	}
}

// Contains reports whether name has already been claimed.
func (n *Namespace) Contains(name string) bool {
	_, ok := n.used[name]
	return ok
}
