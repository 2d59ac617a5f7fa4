// Package keystore provides verification-key storage behind the
// single-method [Store] read contract consumed by the validator.
//
// # Design
//
// A key record maps a kid to a JSON-encoded JWK string. [RedisStore] persists
// records under a namespaced prefix with a set index of known kids and an
// optional TTL; [MemoryStore] serves tests and embedding; [Cache] is a
// read-through TTL decorator over any Store, including negative caching of
// misses. A miss is (nil, nil) — errors are reserved for backend failure.
//
// # Architecture boundaries
//
// This package owns key persistence only. It does NOT parse JWK material,
// verify signatures, or make validation decisions — those belong to the root
// package and internal/keyparse.
//
// # What this package must NOT do
//
//   - Import the root tokenguard package (no import cycles).
//   - Interpret or rewrite stored JWK JSON.
//   - Treat a missing key as an error.
package keystore
