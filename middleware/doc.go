// Package middleware exposes an HTTP adapter for bearer-token enforcement
// built on top of tokenguard.Validator.
//
// # Guard
//
//   - [Require] — reads the Authorization header, runs Validate, rejects
//     unverified or expired tokens, and injects the [tokenguard.ValidationResult]
//     into the request context for downstream handlers.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Validator calls. It does NOT
// implement validation logic itself — all decisions are delegated to
// Validator.Validate.
//
// # What this package must NOT do
//
//   - Parse tokens or JWKs directly (delegates to the Validator).
//   - Access the key store (the Validator handles I/O).
//   - Make decisions beyond pass/reject from the validation result.
package middleware
