package schema

// Options are the feature flags the Schema Translator consults (§6
// "feature-flags"). The zero value has every flag off; DefaultOptions turns
// EnableBase64 on.
type Options struct {
	// EnableBase64 controls whether `format: byte` / `contentEncoding:
	// base64` strings translate to a Base64-encoded byte container alias
	// (true) or a plain string alias (false), for target runtimes that
	// haven't wired up the container type yet.
	EnableBase64 bool
}

// DefaultOptions returns the Options a fresh Generator uses absent explicit
// configuration.
func DefaultOptions() Options {
	return Options{EnableBase64: true}
}
