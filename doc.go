// Package tokenguard validates compact signed bearer tokens (JWT compact
// serialization) against either a caller-supplied shared secret or a public
// key resolved from a key store by the token's kid header.
//
// The package is designed for concurrent server workloads: Validator.Validate
// is safe to call from multiple goroutines after initialization through
// [Builder.Build], and every call returns a [ValidationResult] — no path
// panics or returns a Go error to the caller.
//
// # Architecture boundaries
//
// tokenguard is the public surface. It exposes [Validator], [Builder],
// [Config], [ValidationResult], and the audit sink types. Key persistence
// lives in the keystore subpackage behind the single-method [keystore.Store]
// contract; JWK import lives under internal/ and is never exported.
//
// # What this package must NOT do
//
//   - Mint, refresh, rotate, or revoke tokens or keys.
//   - Expose Redis clients or JWK parsing details in its public API.
//   - Perform I/O beyond the one key-store read per asymmetric validation.
package tokenguard
