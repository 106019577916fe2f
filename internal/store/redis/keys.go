package redis

import "strings"

const (
	// KeyPrefixClient is the prefix for per-client value keys
	KeyPrefixClient = "healthvibe:client:"
)

// ValueKey returns the Redis key holding one value of a client scope.
// Example: healthvibe:client:3f2a...:bookmarkedRemedies
func ValueKey(scope, key string) string {
	return KeyPrefixClient + scope + ":" + key
}

// ScopePattern returns the SCAN pattern matching every key of a scope.
func ScopePattern(scope string) string {
	return KeyPrefixClient + escapeGlob(scope) + ":*"
}

// escapeGlob escapes the characters SCAN MATCH treats as wildcards.
func escapeGlob(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)
	return r.Replace(s)
}
